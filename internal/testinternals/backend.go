package testinternals

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

const (
	TestToken    = "test-token-5f0a2de172bc"
	TestName     = "serj"
	TestEmail    = "serj@test.com"
	TestPassword = "testpass"
)

type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	RequestID     string
}

type user struct {
	Name     string
	Password string
}

// Backend is an in-memory stand-in for the personal records API:
// same routes, status codes and messages as the real service.
type Backend struct {
	mu sync.Mutex

	users      map[string]user
	prTypes    []any
	activities []string
	records    map[string][]map[string]any
	exercises  []map[string]any
	added      []map[string]any
	requests   []RecordedRequest

	// Delays postpones the response of a route, keyed by request path.
	Delays map[string]time.Duration
	// Failures forces a status code (with a message body) for a request path.
	Failures map[string]int
	// RawResponses replaces the body of a successful response for a request path.
	RawResponses map[string]string
}

func NewBackend() *Backend {
	return &Backend{
		users: map[string]user{
			TestEmail: {Name: TestName, Password: TestPassword},
		},
		prTypes:      []any{},
		activities:   []string{},
		records:      map[string][]map[string]any{},
		Delays:       map[string]time.Duration{},
		Failures:     map[string]int{},
		RawResponses: map[string]string{},
	}
}

func recordsKey(pr, exercise string) string {
	return pr + "\x00" + exercise
}

func (b *Backend) SetPRTypes(prTypes ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prTypes = prTypes
}

func (b *Backend) SetActivities(activities ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.activities = activities
}

func (b *Backend) SetExercises(exercises ...map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.exercises = exercises
}

// SetRecords sets the history returned for a (pr, exercise) pair; empty exercise is the legacy key.
func (b *Backend) SetRecords(pr, exercise string, entries ...map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records[recordsKey(pr, exercise)] = entries
}

func (b *Backend) Added() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]any(nil), b.added...)
}

func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RecordedRequest(nil), b.requests...)
}

func (b *Backend) Router() *mux.Router {
	r := mux.NewRouter()
	// keep %2F inside record keys intact
	r.UseEncodedPath()
	r.Use(otelmux.Middleware("fake-pr-backend"))
	r.Use(b.recordRequest)

	r.HandleFunc("/login", b.handleLogin).Methods("POST")
	r.HandleFunc("/register", b.handleRegister).Methods("POST")
	r.HandleFunc("/exo", b.handleExercises).Methods("GET")
	r.HandleFunc("/personal-record", b.tokenRequired(b.handleAddRecord)).Methods("POST")
	r.HandleFunc("/pr-types", b.tokenRequired(b.handlePRTypes)).Methods("GET")
	r.HandleFunc("/activities", b.tokenRequired(b.handleActivities)).Methods("GET")
	r.HandleFunc("/get-personal-record/{pr}/{exercise}", b.tokenRequired(b.handleRecords)).Methods("GET")
	r.HandleFunc("/personal-record/{pr}", b.tokenRequired(b.handleRecords)).Methods("GET")

	return r
}

// Start serves the backend until the test ends.
func (b *Backend) Start(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(b.Router())
	t.Cleanup(server.Close)
	return server
}

func (b *Backend) recordRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.EscapedPath(),
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			RequestID:     r.Header.Get("X-Request-Id"),
		})
		delay := b.Delays[r.URL.EscapedPath()]
		failure := b.Failures[r.URL.EscapedPath()]
		b.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if failure != 0 {
			writeJSON(w, failure, map[string]string{"message": http.StatusText(failure)})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (b *Backend) tokenRequired(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token manquant"})
			return
		}
		if token != TestToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token invalide : Signature verification failed"})
			return
		}
		next(w, r)
	}
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req["email"] == "" || req["password"] == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Champs manquants"})
		return
	}

	b.mu.Lock()
	u, ok := b.users[req["email"]]
	b.mu.Unlock()
	if !ok || u.Password != req["password"] {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Identifiants invalides"})
		return
	}

	b.writeOK(w, r, http.StatusOK, map[string]string{"message": "Connexion réussie", "token": TestToken})
}

func (b *Backend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req["name"] == "" || req["email"] == "" || req["password"] == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Champs manquants"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.users[req["email"]]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Email déjà utilisé"})
		return
	}
	b.users[req["email"]] = user{Name: req["name"], Password: req["password"]}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Utilisateur créé avec succès"})
}

func (b *Backend) handleAddRecord(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Données invalides; champs manquants"})
		return
	}
	for _, key := range []string{"exo_id", "quantity", "time", "added_weight", "date", "weight"} {
		if _, ok := req[key]; !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Données invalides; champs manquants"})
			return
		}
	}

	b.mu.Lock()
	b.added = append(b.added, req)
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{"message": "PR ajouté avec succès."})
}

func (b *Backend) handlePRTypes(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	prTypes := b.prTypes
	b.mu.Unlock()
	b.writeOK(w, r, http.StatusOK, prTypes)
}

func (b *Backend) handleActivities(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	activities := b.activities
	b.mu.Unlock()
	b.writeOK(w, r, http.StatusOK, activities)
}

func (b *Backend) handleExercises(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	exercises := b.exercises
	b.mu.Unlock()
	if exercises == nil {
		exercises = []map[string]any{}
	}
	b.writeOK(w, r, http.StatusOK, exercises)
}

func (b *Backend) handleRecords(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pr, err := url.PathUnescape(vars["pr"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "PR invalide"})
		return
	}
	exercise, err := url.PathUnescape(vars["exercise"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Exercice invalide"})
		return
	}

	b.mu.Lock()
	entries, ok := b.records[recordsKey(pr, exercise)]
	b.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Aucun PR trouvé pour " + pr})
		return
	}

	b.writeOK(w, r, http.StatusOK, entries)
}

func (b *Backend) writeOK(w http.ResponseWriter, r *http.Request, status int, payload any) {
	b.mu.Lock()
	raw, ok := b.RawResponses[r.URL.EscapedPath()]
	b.mu.Unlock()
	if ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if _, err := w.Write([]byte(raw)); err != nil {
			log.Errorf("fake backend, write raw response: %s", err)
		}
		return
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("fake backend, write response: %s", err)
	}
}
