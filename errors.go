package textrec

import "errors"

// 识别过程中可能返回的错误类型, 均可通过 errors.Is 匹配
var (
	// ErrModelLoad 模型内容损坏、输入形状不符或编译失败
	ErrModelLoad = errors.New("模型加载失败")
	// ErrAlphabetParse 字符表内容损坏(键不是非负整数或值不是字符串)
	ErrAlphabetParse = errors.New("字符表解析失败")
	// ErrInference 推理调用本身失败
	ErrInference = errors.New("推理失败")
	// ErrClassIndexOutOfRange 解码出的类别编号超出字符表长度, 说明模型与字符表不匹配
	ErrClassIndexOutOfRange = errors.New("类别索引超出字符表范围")
)
