package journal

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Recorder appends records for one driver session. Every record carries the
// session id and a sequence number starting at 1.
type Recorder struct {
	store   Store
	session string

	mu  sync.Mutex
	seq int
	now func() time.Time
}

// NewRecorder starts a session with a fresh random id.
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store, session: uuid.NewString(), now: time.Now}
}

// Session returns the session id.
func (r *Recorder) Session() string { return r.session }

// Record appends one command line and its reply.
func (r *Recorder) Record(ctx context.Context, line, command, reply string) error {
	r.mu.Lock()
	r.seq++
	rec := Record{
		Timestamp: r.now().UTC(),
		Session:   r.session,
		Seq:       r.seq,
		Line:      line,
		Command:   command,
		Reply:     reply,
	}
	r.mu.Unlock()
	return r.store.Append(ctx, rec)
}
