package textrec

import (
	"errors"
	"testing"
)

// buildTensor 按每个时间步的最优类别构造 one-hot 概率张量
func buildTensor(best []int, classes int) ([]float32, []int64) {
	data := make([]float32, len(best)*classes)
	for t, idx := range best {
		data[t*classes+idx] = 1
	}
	return data, []int64{int64(len(best)), 1, int64(classes)}
}

func TestDecodeGreedyCollapse(t *testing.T) {
	alphabet := []string{"a", "-", "b"}
	// a a - b b a -> 折叠重复、去掉空白, 空白之后允许重新出现同一字符
	data, shape := buildTensor([]int{0, 0, 1, 2, 2, 0}, 3)

	got, err := decodeGreedy(data, shape, alphabet)
	if err != nil {
		t.Fatalf("解码失败: %v", err)
	}
	if got != "aba" {
		t.Fatalf("期望 aba, 实际 %q", got)
	}
}

func TestDecodeGreedyAllBlank(t *testing.T) {
	alphabet := []string{"a", "-", "b"}
	data, shape := buildTensor([]int{1, 1, 1}, 3)

	got, err := decodeGreedy(data, shape, alphabet)
	if err != nil {
		t.Fatalf("解码失败: %v", err)
	}
	if got != "" {
		t.Fatalf("全空白序列应解码为空串, 实际 %q", got)
	}
}

func TestDecodeGreedySingleStep(t *testing.T) {
	alphabet := []string{"-", "x"}
	data, shape := buildTensor([]int{1}, 2)

	got, err := decodeGreedy(data, shape, alphabet)
	if err != nil {
		t.Fatalf("解码失败: %v", err)
	}
	if got != "x" {
		t.Fatalf("期望 x, 实际 %q", got)
	}
}

func TestDecodeGreedyIdempotent(t *testing.T) {
	alphabet := []string{"a", "-", "b"}
	data, shape := buildTensor([]int{0, 1, 2, 2, 1, 0}, 3)

	first, err := decodeGreedy(data, shape, alphabet)
	if err != nil {
		t.Fatalf("解码失败: %v", err)
	}
	second, err := decodeGreedy(data, shape, alphabet)
	if err != nil {
		t.Fatalf("解码失败: %v", err)
	}
	if first != second {
		t.Fatalf("两次解码结果不一致: %q vs %q", first, second)
	}
}

func TestDecodeGreedyOutOfRange(t *testing.T) {
	// 张量有 4 个类别, 字符表只有 3 个, 最优类别落在缺失处
	alphabet := []string{"a", "-", "b"}
	data, shape := buildTensor([]int{3}, 4)

	_, err := decodeGreedy(data, shape, alphabet)
	if !errors.Is(err, ErrClassIndexOutOfRange) {
		t.Fatalf("期望 ErrClassIndexOutOfRange, 实际 %v", err)
	}
}

func TestDecodeGreedyTieBreak(t *testing.T) {
	// 概率全相等时取编号最小的类别
	alphabet := []string{"a", "b"}
	data := []float32{0, 0}
	shape := []int64{1, 1, 2}

	got, err := decodeGreedy(data, shape, alphabet)
	if err != nil {
		t.Fatalf("解码失败: %v", err)
	}
	if got != "a" {
		t.Fatalf("并列最大值应取编号最小的类别, 实际 %q", got)
	}
}

func TestDecodeGreedyBadShape(t *testing.T) {
	alphabet := []string{"a", "-"}
	_, err := decodeGreedy([]float32{0, 1}, []int64{1, 2}, alphabet)
	if !errors.Is(err, ErrInference) {
		t.Fatalf("非 [T,1,C] 形状应报推理错误, 实际 %v", err)
	}
}
