package util

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// ParseAlphabet 解析字符表 JSON, 键为十进制类别编号, 值为对应字符。
// 按编号升序返回字符序列, 编号不连续时空缺被直接跳过。
func ParseAlphabet(content []byte) ([]string, error) {
	var raw map[string]string
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("解析字符表失败: %w", err)
	}

	type entry struct {
		index uint64
		label string
	}
	entries := make([]entry, 0, len(raw))
	for k, v := range raw {
		index, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("字符表键 %q 不是非负整数: %w", k, err)
		}
		entries = append(entries, entry{index: index, label: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].index < entries[j].index })

	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		labels = append(labels, e.label)
	}
	return labels, nil
}

// LoadAlphabet 加载字符表文件
func LoadAlphabet(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开字符表文件 %s: %w", path, err)
	}
	return ParseAlphabet(content)
}
