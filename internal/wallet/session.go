package wallet

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SessionState is the last-connected session persisted between invocations,
// letting a later run re-attach to the account without prompting.
type SessionState struct {
	Account string `json:"account"`
	Wallet  string `json:"wallet"`
}

// sessionFilePath returns the per-user session cache file.
// Uses the OS cache directory with 0600 permissions so only the current
// user can read it.
//
//	macOS:   ~/Library/Caches/votecli/session.json
//	Linux:   ~/.cache/votecli/session.json
//	Windows: %LocalAppData%\votecli\session.json
func sessionFilePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "votecli", "session.json")
}

// LoadSession reads the cached session. ok is false when no session exists
// or the file is unreadable.
func LoadSession() (state SessionState, ok bool) {
	data, err := os.ReadFile(sessionFilePath())
	if err != nil {
		return SessionState{}, false
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return SessionState{}, false
	}
	return state, state.Account != ""
}

// SaveSession persists the session with restrictive permissions.
// Errors are silently ignored; the cache is best effort.
func SaveSession(state SessionState) {
	path := sessionFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return
	}
	data, err := json.Marshal(state)
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o600)
}

// ClearSession removes the cached session.
func ClearSession() error {
	err := os.Remove(sessionFilePath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
