package preprocess

// ImportNotFoundError reports a #import directive whose path has no entry in
// the caller-supplied import mapping.
type ImportNotFoundError struct {
	Path string
}

func (e ImportNotFoundError) Error() string {
	return "import not found: " + e.Path
}

func (e ImportNotFoundError) Is(err error) bool {
	_, ok := err.(ImportNotFoundError)
	return ok
}
