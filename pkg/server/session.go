package server

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/tablekit/sortstate/pkg/config"
	"github.com/tablekit/sortstate/pkg/observability/logger"
	"github.com/tablekit/sortstate/pkg/observability/metrics"
	"github.com/tablekit/sortstate/pkg/sortstate"
)

const sessionCookie = "sort_session"

// session pairs one controller with the mutex that serializes all
// requests touching it. The controller itself is lock-free; it expects
// its host to serialize mutations, and for HTTP that host is us.
type session struct {
	mu   sync.Mutex
	ctrl *sortstate.Controller
}

// sessionStore owns the per-session controllers, keyed by the session
// cookie value.
type sessionStore struct {
	table config.TableConfig
	log   logger.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionStore(table config.TableConfig, log logger.Logger) *sessionStore {
	return &sessionStore{
		table:    table,
		log:      log,
		sessions: make(map[string]*session),
	}
}

// acquire returns the locked session for the request, creating one (and
// setting the cookie) for first-time visitors. Callers must release the
// session mutex when done.
func (st *sessionStore) acquire(w http.ResponseWriter, r *http.Request) (*session, error) {
	id := ""
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}

	st.mu.Lock()
	sess, ok := st.sessions[id]
	if !ok {
		ctrl, err := newSessionController(st.table, st.log)
		if err != nil {
			st.mu.Unlock()
			return nil, err
		}
		id = uuid.NewString()
		sess = &session{ctrl: ctrl}
		st.sessions[id] = sess
		metrics.RecordSessionCreated()
		st.log.Debug("sort session created", "session_id", id)
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	st.mu.Unlock()

	sess.mu.Lock()
	return sess, nil
}

// newSessionController builds a controller from the table configuration:
// initial state from the compact query form, then one registration per
// declared field. The HTTP binding has no visual elements, so display
// handles are the field names themselves.
func newSessionController(table config.TableConfig, log logger.Logger) (*sortstate.Controller, error) {
	initial, err := sortstate.ParseQuery(table.InitialSort)
	if err != nil {
		return nil, err
	}
	ctrl, err := sortstate.New(
		sortstate.WithInitialState(initial),
		sortstate.WithMultiSort(table.AllowMultiple),
		sortstate.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	for _, f := range table.Fields {
		if err := ctrl.RegisterField(f.Name, f.DescendingFirst, f.Label, f.Name); err != nil {
			return nil, err
		}
	}
	return ctrl, nil
}
