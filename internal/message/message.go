package message

import "time"

// DeployNotification is published after a successful deploy so downstream
// automation can pick up freshly synced decks.
type DeployNotification struct {
	Files       []string  `json:"files"`
	Destination string    `json:"destination"`
	Path        string    `json:"path"`
	DeployedAt  time.Time `json:"deployed_at"`
}

func NewDeployNotification(files []string, destination, path string) DeployNotification {
	return DeployNotification{
		Files:       files,
		Destination: destination,
		Path:        path,
		DeployedAt:  time.Now().UTC(),
	}
}
