package preprocessor

import (
	"context"
	"fmt"
	"image"
	"math"

	apperrors "github.com/akugone/kawayC/application/appErrors"
	"github.com/akugone/kawayC/application/constants"
	"github.com/akugone/kawayC/entities"
	"github.com/akugone/kawayC/infrastructure/logger"
	"gocv.io/x/gocv"
)

// Config controls the derived image geometry and the OCR enhancement chain.
type Config struct {
	FaceSize        int
	OCRWidth        int
	FrameMaxSide    int
	SharpenKernel   int
	SharpenAmount   float64
	DenoiseStrength float32
}

func GetDefaultConfig() Config {
	return Config{
		FaceSize:        constants.FACE_TENSOR_SIZE,
		OCRWidth:        constants.OCR_TARGET_WIDTH,
		FrameMaxSide:    constants.DETECTION_FRAME_MAX_SIDE,
		SharpenKernel:   5,
		SharpenAmount:   1.0,
		DenoiseStrength: 7,
	}
}

// OpenCVPreprocessor implements the preprocessing chain with gocv. It holds no
// state between calls and is safe for concurrent use.
type OpenCVPreprocessor struct {
	config Config
}

func NewOpenCVPreprocessor(config Config) *OpenCVPreprocessor {
	return &OpenCVPreprocessor{config: config}
}

// decode returns an upright 3-channel BGR image. OpenCV applies the EXIF
// orientation tag unless told otherwise.
func (p *OpenCVPreprocessor) decode(data []byte) (gocv.Mat, error) {
	if len(data) == 0 {
		return gocv.NewMat(), apperrors.NewInputError("document is empty", nil)
	}

	img, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		img.Close()
		return gocv.NewMat(), apperrors.NewInputError("document is not a supported image", err)
	}
	if img.Empty() || img.Cols() == 0 || img.Rows() == 0 {
		img.Close()
		return gocv.NewMat(), apperrors.NewInputError("document is not a supported image", nil)
	}
	return img, nil
}

// FaceTensor crops the centre square ("cover"), resizes it to FaceSize and
// returns raw RGB values as float32 in NHWC order.
func (p *OpenCVPreprocessor) FaceTensor(ctx context.Context, data []byte) (*entities.FaceTensor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := p.decode(data)
	defer img.Close()
	if err != nil {
		return nil, err
	}

	square := img.Region(CenterSquare(img.Cols(), img.Rows()))
	defer square.Close()

	size := image.Pt(p.config.FaceSize, p.config.FaceSize)
	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(square, &resized, size, 0, 0, interpolationFor(square.Cols(), p.config.FaceSize))

	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(resized, &rgb, gocv.ColorBGRToRGB)

	raw := rgb.ToBytes()
	pixels := make([]float32, len(raw))
	for i, v := range raw {
		pixels[i] = float32(v)
	}
	wipe(raw)

	tensor := &entities.FaceTensor{
		Width:    p.config.FaceSize,
		Height:   p.config.FaceSize,
		Channels: constants.FACE_TENSOR_CHANNELS,
		Pixels:   pixels,
	}
	if len(pixels) != tensor.Len() {
		return nil, apperrors.NewInputError("document is not a supported image", fmt.Errorf("unexpected face tensor length %d", len(pixels)))
	}
	return tensor, nil
}

// TextImage resizes to OCRWidth, converts to grayscale, stretches the
// histogram, denoises and sharpens, then PNG-encodes the result.
func (p *OpenCVPreprocessor) TextImage(ctx context.Context, data []byte) (*entities.TextImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := p.decode(data)
	defer img.Close()
	if err != nil {
		return nil, err
	}

	size := ScaleToWidth(img.Cols(), img.Rows(), p.config.OCRWidth)
	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(img, &resized, size, 0, 0, interpolationFor(img.Cols(), size.X))

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(resized, &gray, gocv.ColorBGRToGray)

	normalized := gocv.NewMat()
	defer normalized.Close()
	gocv.Normalize(gray, &normalized, 0, 255, gocv.NormMinMax)

	denoised := gocv.NewMat()
	defer denoised.Close()
	if p.config.DenoiseStrength > 0 {
		gocv.FastNlMeansDenoisingWithParams(normalized, &denoised, p.config.DenoiseStrength, 7, 21)
	} else {
		normalized.CopyTo(&denoised)
	}

	sharpened := p.sharpen(denoised)
	defer sharpened.Close()

	buffer, err := gocv.IMEncode(gocv.PNGFileExt, sharpened)
	if err != nil {
		return nil, apperrors.NewInputError("document is not a supported image", err)
	}
	defer buffer.Close()

	encoded := make([]byte, buffer.Len())
	copy(encoded, buffer.GetBytes())

	logger.Info("ocr image prepared", logger.LoggerOptions{
		Key: "ocr_image",
		Data: map[string]interface{}{
			"width":  size.X,
			"height": size.Y,
			"bytes":  len(encoded),
		},
	})

	return &entities.TextImage{Width: size.X, Height: size.Y, PNG: encoded}, nil
}

// sharpen applies an unsharp mask: src*(1+amount) - blur(src)*amount.
func (p *OpenCVPreprocessor) sharpen(src gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	if p.config.SharpenAmount <= 0 || p.config.SharpenKernel <= 1 {
		src.CopyTo(&dst)
		return dst
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	kernel := image.Pt(p.config.SharpenKernel, p.config.SharpenKernel)
	gocv.GaussianBlur(src, &blurred, kernel, 0, 0, gocv.BorderDefault)
	gocv.AddWeighted(src, 1+p.config.SharpenAmount, blurred, -p.config.SharpenAmount, 0, &dst)
	return dst
}

// Frame returns the upright image with its longest side capped at
// FrameMaxSide, as packed BGR bytes.
func (p *OpenCVPreprocessor) Frame(ctx context.Context, data []byte) (*entities.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := p.decode(data)
	defer img.Close()
	if err != nil {
		return nil, err
	}

	size := FitWithin(img.Cols(), img.Rows(), p.config.FrameMaxSide)
	frame := img
	if size.X != img.Cols() || size.Y != img.Rows() {
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(img, &resized, size, 0, 0, gocv.InterpolationArea)
		frame = resized
	}

	return &entities.Frame{Width: frame.Cols(), Height: frame.Rows(), BGR: frame.ToBytes()}, nil
}

// CenterSquare returns the largest square centred in a width x height image.
func CenterSquare(width, height int) image.Rectangle {
	side := min(width, height)
	x := (width - side) / 2
	y := (height - side) / 2
	return image.Rect(x, y, x+side, y+side)
}

// ScaleToWidth keeps the aspect ratio while setting the width.
func ScaleToWidth(width, height, target int) image.Point {
	scaled := int(math.Round(float64(height) * float64(target) / float64(width)))
	return image.Pt(target, max(scaled, 1))
}

// FitWithin scales down so that neither side exceeds maxSide.
func FitWithin(width, height, maxSide int) image.Point {
	longest := max(width, height)
	if maxSide <= 0 || longest <= maxSide {
		return image.Pt(width, height)
	}
	ratio := float64(maxSide) / float64(longest)
	return image.Pt(max(int(math.Round(float64(width)*ratio)), 1), max(int(math.Round(float64(height)*ratio)), 1))
}

func interpolationFor(from, to int) gocv.InterpolationFlags {
	if to < from {
		return gocv.InterpolationArea
	}
	return gocv.InterpolationCubic
}

func wipe(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
