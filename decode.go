package textrec

import (
	"fmt"
	"math"
	"strings"
)

// blankLabel 空白占位符, 表示该时间步未识别出字符
const blankLabel = "-"

// decodeGreedy 对 [T,1,C] 概率张量做贪心解码: 每个时间步取最大概率的类别,
// 折叠连续重复并丢弃空白占位符。全空白序列解码为空串, 属于正常结果。
// 概率相同时取编号较小的类别(严格大于比较)。
func decodeGreedy(output []float32, shape []int64, alphabet []string) (string, error) {
	if len(shape) != 3 || shape[1] != 1 {
		return "", fmt.Errorf("%w: 输出张量形状异常 %v", ErrInference, shape)
	}

	steps := int(shape[0])
	classes := int(shape[2])

	var sb strings.Builder
	last := ""
	for t := 0; t < steps; t++ {
		start := t * classes
		end := start + classes
		if end > len(output) {
			break
		}

		maxIdx := 0
		maxVal := float32(math.Inf(-1))
		for j, v := range output[start:end] {
			if v > maxVal {
				maxVal = v
				maxIdx = j
			}
		}

		if maxIdx >= len(alphabet) {
			return "", fmt.Errorf("%w: 类别 %d, 字符表长度 %d",
				ErrClassIndexOutOfRange, maxIdx, len(alphabet))
		}

		word := alphabet[maxIdx]
		if word != last && word != blankLabel {
			sb.WriteString(word)
		}
		last = word
	}
	return sb.String(), nil
}
