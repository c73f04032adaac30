package model

// StoredImage pairs an event with its cached image bytes, used by the
// compression maintenance pass.
type StoredImage struct {
	EventID int
	Data    []byte
}
