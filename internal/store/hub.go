package store

import "sync"

type topic int

const (
	topicPeripherals topic = iota
	topicHistory
)

// hub fans out "table changed" notifications to watchers. Each subscriber
// channel has a buffer of one, so bursts of writes collapse into a single
// pending notification.
type hub struct {
	mu   sync.Mutex
	subs map[topic]map[chan struct{}]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[topic]map[chan struct{}]struct{})}
}

func (h *hub) subscribe(t topic) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	if h.subs[t] == nil {
		h.subs[t] = make(map[chan struct{}]struct{})
	}
	h.subs[t][ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.subs[t], ch)
		h.mu.Unlock()
	}
}

func (h *hub) publish(t topic) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[t] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
