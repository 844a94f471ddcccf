// Package onnx 封装 onnxruntime 会话, 作为识别引擎的默认推理后端。
package onnx

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

// Config onnxruntime 运行环境配置
type Config struct {
	OnnxRuntimeLibPath string
	NumThreads         int

	SessionOptions *ort.SessionOptions
}

// New 初始化 onnxruntime 运行环境与会话选项
func (c *Config) New() error {
	if !ort.IsInitialized() {
		ort.SetSharedLibraryPath(c.OnnxRuntimeLibPath)
		if err := ort.InitializeEnvironment(); err != nil {
			return fmt.Errorf("初始化 onnxruntime 失败: %w", err)
		}
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return fmt.Errorf("创建会话选项失败: %w", err)
	}
	if c.NumThreads > 0 {
		if err := opts.SetIntraOpNumThreads(c.NumThreads); err != nil {
			return fmt.Errorf("设置线程数失败: %w", err)
		}
	}
	c.SessionOptions = opts
	return nil
}

// Session 单输入单输出的 onnxruntime 会话
type Session struct {
	session *ort.DynamicAdvancedSession
	height  int
	width   int
}

// NewSession 从模型内容创建会话, 要求模型为单输入单输出,
// 且输入形状绑定为 [1,1,h,w]
func (c *Config) NewSession(modelData []byte, h, w int) (*Session, error) {
	inputs, outputs, err := ort.GetInputOutputInfoWithONNXData(modelData)
	if err != nil {
		return nil, fmt.Errorf("解析模型失败: %w", err)
	}
	if len(inputs) != 1 || len(outputs) != 1 {
		return nil, fmt.Errorf("模型输入输出数量异常: %d 入 %d 出", len(inputs), len(outputs))
	}

	in := inputs[0]
	if err := checkInputShape(in.Dimensions, h, w); err != nil {
		return nil, err
	}

	session, err := ort.NewDynamicAdvancedSessionWithONNXData(modelData,
		[]string{in.Name}, []string{outputs[0].Name}, c.SessionOptions)
	if err != nil {
		return nil, fmt.Errorf("创建会话失败: %w", err)
	}

	return &Session{session: session, height: h, width: w}, nil
}

// checkInputShape 校验 [1,1,h,w] 输入绑定, 动态维(<=0)按任意匹配处理
func checkInputShape(dims []int64, h, w int) error {
	want := []int64{1, 1, int64(h), int64(w)}
	if len(dims) != len(want) {
		return fmt.Errorf("模型输入应为 4 维, 实际 %d 维", len(dims))
	}
	for i, d := range dims {
		if d > 0 && d != want[i] {
			return fmt.Errorf("模型输入形状 %v 与期望 %v 不符", dims, want)
		}
	}
	return nil
}

// Run 执行一次前向推理, 返回输出张量内容及其形状
func (s *Session) Run(input []float32) ([]float32, []int64, error) {
	inputTensor, err := ort.NewTensor(ort.NewShape(1, 1, int64(s.height), int64(s.width)), input)
	if err != nil {
		return nil, nil, fmt.Errorf("创建输入张量失败: %w", err)
	}
	defer func() { _ = inputTensor.Destroy() }()

	outputs := []ort.Value{nil}
	if err := s.session.Run([]ort.Value{inputTensor}, outputs); err != nil {
		return nil, nil, fmt.Errorf("推理失败: %w", err)
	}
	defer func() {
		for _, o := range outputs {
			if o != nil {
				_ = o.Destroy()
			}
		}
	}()

	outTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, nil, fmt.Errorf("输出张量类型异常: %T", outputs[0])
	}

	shape := outTensor.GetShape()
	data := make([]float32, len(outTensor.GetData()))
	copy(data, outTensor.GetData())
	return data, []int64(shape), nil
}

// Destroy 释放会话资源
func (s *Session) Destroy() error {
	return s.session.Destroy()
}
