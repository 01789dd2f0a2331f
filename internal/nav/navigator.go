package nav

import (
	"sync"

	"hostelmeals/internal/utils"
)

// Well-known destinations the gateway and guards redirect to.
const (
	PathHome      = "/"
	PathLogin     = "/login"
	PathForbidden = "/forbidden"
)

// Navigator is the read side of the current location.
type Navigator interface {
	Location() string
	Go(path string)
}

// History is the single in-process location slot the whole client shares.
// Writers replace the location atomically; a redirect to the path already
// shown is suppressed so interceptors firing twice navigate only once.
type History struct {
	mu         sync.RWMutex
	current    string
	returnPath string
}

func NewHistory() *History {
	return &History{current: PathHome}
}

func (h *History) Location() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

func (h *History) Go(path string) {
	if path == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == path {
		return
	}
	h.current = path
}

// GoLogin stores the interrupted path and navigates to the login screen,
// so a successful sign-in can send the user back where they were headed.
func (h *History) GoLogin(from string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if from != "" && from != PathLogin {
		h.returnPath = from
	}
	if h.current != PathLogin {
		h.current = PathLogin
		utils.LogEvent("", "nav", "redirect_login", "from="+from)
	}
}

func (h *History) GoForbidden() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current != PathForbidden {
		h.current = PathForbidden
		utils.LogEvent("", "nav", "redirect_forbidden", "")
	}
}

// ConsumeReturn pops the stored post-login destination, defaulting home.
func (h *History) ConsumeReturn() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	path := h.returnPath
	h.returnPath = ""
	if path == "" {
		return PathHome
	}
	return path
}
