package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	actions          map[string]int
	gamesSaved       int
	saveFailures     int
	saveDurations    []float64
	stageFailures    map[string]int
	remoteSyncErrors int
	autoSaves        int
	gamesListed      int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		actions:       make(map[string]int),
		stageFailures: make(map[string]int),
		saveDurations: make([]float64, 0),
	}
}

func (m *Mock) IncActionsDispatched(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions[kind]++
}

func (m *Mock) IncGamesSaved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesSaved++
}

func (m *Mock) IncSaveFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveFailures++
}

func (m *Mock) ObserveSaveDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveDurations = append(m.saveDurations, duration)
}

func (m *Mock) IncStageFailed(stage string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stageFailures[stage]++
}

func (m *Mock) IncRemoteSyncErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remoteSyncErrors++
}

func (m *Mock) IncAutoSaves() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoSaves++
}

func (m *Mock) SetGamesListed(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesListed = count
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Actions returns how many actions of the given kind were counted.
func (m *Mock) Actions(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.actions[kind]
}

// GamesSaved returns the number of times IncGamesSaved was called.
func (m *Mock) GamesSaved() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesSaved
}

// SaveFailures returns the number of times IncSaveFailures was called.
func (m *Mock) SaveFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveFailures
}

// StageFailures returns how often the named stage failed.
func (m *Mock) StageFailures(stage string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stageFailures[stage]
}

// RemoteSyncErrors returns the number of times IncRemoteSyncErrors was called.
func (m *Mock) RemoteSyncErrors() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remoteSyncErrors
}

// AutoSaves returns the number of times IncAutoSaves was called.
func (m *Mock) AutoSaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.autoSaves
}

// GamesListed returns the last value passed to SetGamesListed.
func (m *Mock) GamesListed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesListed
}
