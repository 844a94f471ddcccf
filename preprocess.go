package textrec

import (
	"image"
	"math"

	"github.com/up-zero/gotool/imageutil"
	"golang.org/x/image/draw"
)

const (
	// 模型输入的规范尺寸, 即 [1,1,recHeight,recWidth]
	recWidth  = 384
	recHeight = 32

	// 灰度极差低于该值的缓冲视为空白(单色)区域
	monoThreshold = 0.02
)

// ToGrayF32 把彩色图转为 [0,1] 范围的浮点灰度缓冲
func ToGrayF32(img image.Image) *GrayF32 {
	gray := imageutil.Grayscale(img)
	b := gray.Bounds()
	dst := NewGrayF32(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[y*dst.Width+x] = float32(gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y) / 255.0
		}
	}
	return dst
}

// PreProcess 把任意尺寸的灰度缓冲整理成规范尺寸: 对比度拉伸到 [0,1],
// 等比缩放到高 recHeight(宽度超出 recWidth 时压缩到 recWidth), 右侧补零。
// 返回的布尔值表示缓冲是否含有有效信号, 空白/单色区域为 false。
func PreProcess(src *GrayF32) (*GrayF32, bool) {
	if src.Width <= 0 || src.Height <= 0 || len(src.Pix) == 0 {
		return NewGrayF32(recWidth, recHeight), false
	}

	minV, maxV := src.Pix[0], src.Pix[0]
	for _, v := range src.Pix {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if maxV-minV < monoThreshold {
		return NewGrayF32(recWidth, recHeight), false
	}

	// 对比度拉伸后转 8 位灰度, 交给 x/image 做双线性缩放
	scale := 1 / (maxV - minV)
	g8 := image.NewGray(image.Rect(0, 0, src.Width, src.Height))
	for i, v := range src.Pix {
		t := (v - minV) * scale
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		g8.Pix[i] = uint8(t*255 + 0.5)
	}

	dstW := int(math.Round(float64(src.Width) * recHeight / float64(src.Height)))
	if dstW > recWidth {
		dstW = recWidth
	}
	if dstW < 1 {
		dstW = 1
	}

	resized := image.NewGray(image.Rect(0, 0, recWidth, recHeight))
	draw.BiLinear.Scale(resized, image.Rect(0, 0, dstW, recHeight), g8, g8.Bounds(), draw.Src, nil)

	dst := NewGrayF32(recWidth, recHeight)
	for i, p := range resized.Pix {
		dst.Pix[i] = float32(p) / 255.0
	}
	return dst, true
}
