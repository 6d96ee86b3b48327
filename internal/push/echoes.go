package push

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

const DefaultEchoTTL = 10 * time.Minute

// Echoes remembers recently sent messages so a vendor webhook reporting one
// of them back can be told apart from a push that started at the vendor.
type Echoes struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	sent map[string]time.Time
}

func NewEchoes(ttl time.Duration) *Echoes {
	if ttl <= 0 {
		ttl = DefaultEchoTTL
	}
	return &Echoes{ttl: ttl, now: time.Now, sent: make(map[string]time.Time)}
}

func (e *Echoes) Remember(msg Message) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	for k, at := range e.sent {
		if now.Sub(at) > e.ttl {
			delete(e.sent, k)
		}
	}
	e.sent[fingerprint(msg)] = now
}

func (e *Echoes) Seen(msg Message) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	at, ok := e.sent[fingerprint(msg)]
	return ok && e.now().Sub(at) <= e.ttl
}

// fingerprint covers the fields vendors hand back unchanged.
func fingerprint(msg Message) string {
	h := sha256.New()
	for _, part := range []string{msg.Title, msg.Body, msg.URL} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
