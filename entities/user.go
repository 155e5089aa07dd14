package entities

// User is a free-form profile document; fields are stored as the client sent them.
type User map[string]any
