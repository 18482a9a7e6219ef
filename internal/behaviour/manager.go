package behaviour

// Behaviour is anything driven once per frame. Start runs before the first
// Update or UpdateFixed.
type Behaviour interface {
	Start()
	Update()
	UpdateFixed()
}

type entry struct {
	behaviour Behaviour
	started   bool
}

// Manager runs behaviours in the order they were added.
type Manager struct {
	entries []entry
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Add(b Behaviour) {
	m.entries = append(m.entries, entry{behaviour: b})
}

// Remove drops b and reports whether it was registered.
func (m *Manager) Remove(b Behaviour) bool {
	for i := range m.entries {
		if m.entries[i].behaviour == b {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes all behaviours from the manager
func (m *Manager) Clear() {
	m.entries = m.entries[:0]
}

func (m *Manager) Len() int {
	return len(m.entries)
}

// UpdateAll is called once per rendered frame.
func (m *Manager) UpdateAll() {
	for i := range m.entries {
		m.start(i)
		m.entries[i].behaviour.Update()
	}
}

// UpdateAllFixed is called once per fixed simulation step.
func (m *Manager) UpdateAllFixed() {
	for i := range m.entries {
		m.start(i)
		m.entries[i].behaviour.UpdateFixed()
	}
}

func (m *Manager) start(i int) {
	if !m.entries[i].started {
		m.entries[i].behaviour.Start()
		m.entries[i].started = true
	}
}
