package headless

// Output is an output that is never displayed.
type Output struct {
	backend *Backend
	name    string
	width   uint32
	height  uint32
}

func (o *Output) Backend() *Backend {
	return o.backend
}

func (o *Output) Name() string {
	return o.name
}

// Size returns the size of the output in pixels.
func (o *Output) Size() (width, height uint32) {
	return o.width, o.height
}

func (o *Output) String() string {
	return o.name
}
