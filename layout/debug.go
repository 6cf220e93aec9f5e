package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// Debug 汇总一次排版的中间结果，写成 JSON 便于排查分行与字号。
type Debug struct {
	Text      string    `json:"text"`
	Theme     string    `json:"theme,omitempty"`
	Seed      uint64    `json:"seed"`
	Canvas    Size      `json:"canvas"`
	SafeZone  SafeZone  `json:"safeZone"`
	Font      string    `json:"font"`
	Layout    Result    `json:"layout"`
	Placement Placement `json:"placement"`
}

// WriteDebugJSON 将排版调试信息输出为 JSON 文件。
func WriteDebugJSON(entries []Debug, path string) error {
	if len(entries) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化调试信息失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入调试文件失败: %w", err)
	}
	return nil
}
