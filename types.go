package textrec

import "image"

// ImageSource 可识别的图像输入, 共有三种表示:
// ColorImage(彩色图)、GrayImage(8 位灰度图)、*GrayF32(单通道浮点灰度缓冲)
type ImageSource interface {
	grayF32() *GrayF32
}

// ColorImage 彩色图输入, 只能以 preprocessed=false 方式识别
type ColorImage struct {
	Image image.Image
}

func (c ColorImage) grayF32() *GrayF32 {
	return ToGrayF32(c.Image)
}

// GrayImage 8 位灰度图输入
type GrayImage struct {
	Image *image.Gray
}

func (g GrayImage) grayF32() *GrayF32 {
	src := g.Image
	b := src.Bounds()
	dst := NewGrayF32(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[y*dst.Width+x] = float32(src.GrayAt(b.Min.X+x, b.Min.Y+y).Y) / 255.0
		}
	}
	return dst
}

// GrayF32 单通道浮点灰度缓冲, 行优先存储
type GrayF32 struct {
	Width  int
	Height int
	Pix    []float32
}

// NewGrayF32 创建 w x h 的全零灰度缓冲
func NewGrayF32(w, h int) *GrayF32 {
	return &GrayF32{Width: w, Height: h, Pix: make([]float32, w*h)}
}

func (g *GrayF32) grayF32() *GrayF32 { return g }
