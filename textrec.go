// Package textrec 封装定宽文本识别模型, 把小块图像裁剪识别为字符串。
package textrec

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/getcharzp/go-textrec/internal/onnx"
	"github.com/getcharzp/go-textrec/internal/util"
	"github.com/rs/zerolog"
	"github.com/up-zero/gotool/convertutil"
)

// Model 推理后端接口: 输入为归一化后的 [1,1,H,W] 张量数据,
// 返回 [T,1,C] 输出张量数据及其形状。相同输入必须产生相同输出。
type Model interface {
	Run(input []float32) (data []float32, shape []int64, err error)
	Destroy() error
}

// Config 识别引擎配置信息
type Config struct {
	ModelPath          string // ONNX 模型文件路径, ModelData 为空时使用
	ModelData          []byte // ONNX 模型内容
	AlphabetPath       string // 字符表 JSON 文件路径, AlphabetData 为空时使用
	AlphabetData       []byte // 字符表 JSON 内容
	OnnxRuntimeLibPath string // onnxruntime 动态库路径, 为空时使用 DefaultLibraryPath
	NumThreads         int    // 推理线程数, 0 表示使用默认值

	Model  Model           // 自定义推理后端, 为空时使用内置 onnxruntime
	Logger *zerolog.Logger // 为空时不输出日志
}

// Engine 文本识别引擎。模型句柄与字符表在构造后只读,
// 统计计数由内部互斥锁保护, 可在多个协程间共享同一实例。
type Engine struct {
	model    Model
	alphabet []string
	logger   zerolog.Logger

	mu            sync.Mutex
	invokeCount   int
	inferenceTime time.Duration
}

// NewEngine 初始化识别引擎
func NewEngine(cfg Config) (*Engine, error) {
	var alphabet []string
	var err error
	if cfg.AlphabetData != nil {
		alphabet, err = util.ParseAlphabet(cfg.AlphabetData)
	} else {
		alphabet, err = util.LoadAlphabet(cfg.AlphabetPath)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlphabetParse, err)
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	model := cfg.Model
	if model == nil {
		oc := new(onnx.Config)
		_ = convertutil.CopyProperties(cfg, oc)
		if oc.OnnxRuntimeLibPath == "" {
			oc.OnnxRuntimeLibPath = DefaultLibraryPath()
		}
		if err := oc.New(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrModelLoad, err)
		}

		modelData := cfg.ModelData
		if modelData == nil {
			modelData, err = os.ReadFile(cfg.ModelPath)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrModelLoad, err)
			}
		}
		session, err := oc.NewSession(modelData, recHeight, recWidth)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrModelLoad, err)
		}
		model = session
	}

	return &Engine{
		model:    model,
		alphabet: alphabet,
		logger:   logger,
	}, nil
}

// Recognize 识别图像中的文本。preprocessed 表示输入是否已经过 PreProcess;
// 彩色图必须以 preprocessed=false 传入, 否则直接 panic。
// 未预处理的空白(单色)区域直接返回空串, 不触发推理也不计入统计。
func (e *Engine) Recognize(src ImageSource, preprocessed bool) (string, error) {
	if _, ok := src.(ColorImage); ok && preprocessed {
		panic("textrec: 彩色图不支持 preprocessed=true")
	}

	buf := src.grayF32()
	if !preprocessed {
		var nonMono bool
		buf, nonMono = PreProcess(buf)
		if !nonMono {
			e.logger.Debug().Msg("空白区域, 跳过推理")
			return "", nil
		}
	}

	start := time.Now()
	output, shape, err := e.model.Run(buf.Pix)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInference, err)
	}
	elapsed := time.Since(start)
	e.incStatistics(elapsed)
	e.logger.Debug().Dur("inference", elapsed).Msg("推理完成")

	return decodeGreedy(output, shape, e.alphabet)
}

func (e *Engine) incStatistics(d time.Duration) {
	e.mu.Lock()
	e.invokeCount++
	e.inferenceTime += d
	e.mu.Unlock()
}

// AverageInferenceTime 返回平均单次推理耗时(秒)。
// 从未推理过时结果为 NaN, 由调用方自行判断。
func (e *Engine) AverageInferenceTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inferenceTime.Seconds() / float64(e.invokeCount)
}

// InvokeCount 返回累计推理次数, 被空白短路的调用不计入
func (e *Engine) InvokeCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.invokeCount
}

// Destroy 释放模型资源
func (e *Engine) Destroy() {
	if e.model != nil {
		_ = e.model.Destroy()
	}
}
