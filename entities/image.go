package entities

// FaceTensor is a fixed-size RGB pixel buffer laid out as NHWC with raw
// 0..255 values, ready to feed an embedding network.
type FaceTensor struct {
	Width    int
	Height   int
	Channels int
	Pixels   []float32
}

func (tensor *FaceTensor) Len() int {
	return tensor.Width * tensor.Height * tensor.Channels
}

func (tensor *FaceTensor) Wipe() {
	if tensor == nil {
		return
	}
	wipeFloats(tensor.Pixels)
	tensor.Pixels = nil
}

// TextImage is the OCR-enhanced grayscale rendition of a document, PNG encoded.
type TextImage struct {
	Width  int
	Height int
	PNG    []byte
}

func (img *TextImage) Wipe() {
	if img == nil {
		return
	}
	wipeBytes(img.PNG)
	img.PNG = nil
}

// Frame is an upright BGR frame used for face detection.
type Frame struct {
	Width  int
	Height int
	BGR    []byte
}

func (frame *Frame) Wipe() {
	if frame == nil {
		return
	}
	wipeBytes(frame.BGR)
	frame.BGR = nil
}
