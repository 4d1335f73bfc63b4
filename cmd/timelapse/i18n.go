// Package main provides localization for the timelapse CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Assemble timestamped still frames into a timelapse video": "タイムスタンプ付き静止画からタイムラプス動画を作成",

		// Render command
		"Render a directory of still frames as an MP4 video": "静止画ディレクトリをMP4動画として生成",

		// Output flags
		"Output MP4 file path (default: <input-dir>/timelapse.mp4)": "出力MP4ファイルパス（デフォルト: <入力ディレクトリ>/timelapse.mp4）",
		"YAML configuration file path":                              "YAML設定ファイルのパス",

		// Encoding flags
		"Input frames consumed per second of output": "出力1秒あたりに使う入力フレーム数",
		"Video CRF value (0-51, lower is better)":    "動画のCRF値（0-51、低いほど高品質）",
		"Encoder speed/quality preset":               "エンコーダーの速度/品質プリセット",

		// Overlay flags
		"Disable the timestamp overlay":                                  "タイムスタンプオーバーレイを無効化",
		"TTF font file for the timestamp overlay":                        "タイムスタンプ用のTTFフォントファイル",
		"Overlay corner (top-left, top-right, bottom-left, bottom-right)": "オーバーレイの配置（top-left, top-right, bottom-left, bottom-right）",

		// Crop flags
		"Crop frames to a target aspect ratio":           "フレームを指定アスペクト比に切り抜き",
		"Crop aspect ratio (e.g. 16:9)":                  "切り抜きアスペクト比（例: 16:9）",
		"Crop anchor (center, top, bottom, left, right)": "切り抜きアンカー（center, top, bottom, left, right）",

		// Concurrency flags
		"Number of parallel frame workers (0 = CPU count)": "フレーム処理の並列ワーカー数（0 = CPU数）",

		// Debug flags
		"Enable debug output":        "デバッグ出力を有効化",
		"Directory for debug output": "デバッグ出力のディレクトリ",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Runtime messages
		"Rendering %s...":               "%s を生成中...",
		"Output saved to %s":            "出力を %s に保存しました",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",

		// Error messages
		"Input directory argument is required": "入力ディレクトリ引数が必要です",

		// Summary output flag
		"Output execution summary to file (Markdown format)": "実行サマリーをファイルに出力（Markdown形式）",
		"Summary saved to %s":                                "サマリーを %s に保存しました",
		"Failed to write summary: %s":                        "サマリーの書き込みに失敗しました: %s",

		// Summary content
		"Timelapse Summary": "タイムラプスサマリー",
		"Source":            "入力",
		"Settings":          "設定",
		"Video":             "動画",
		"Generated":         "生成日時",

		// Source section
		"Input Directory": "入力ディレクトリ",
		"Frame Count":     "フレーム数",
		"First Capture":   "最初の撮影時刻",
		"Last Capture":    "最後の撮影時刻",
		"Capture Span":    "撮影期間",

		// Settings section
		"Frame Rate":   "フレームレート",
		"CRF":          "CRF値",
		"Preset":       "プリセット",
		"Overlay":      "オーバーレイ",
		"Font":         "フォント",
		"Crop":         "切り抜き",
		"Aspect Ratio": "アスペクト比",
		"Enabled":      "有効",
		"Disabled":     "無効",

		// Video section
		"Output":     "出力先",
		"Duration":   "再生時間",
		"File Size":  "ファイルサイズ",
		"Resolution": "解像度",
		"Verified":   "検証済み",
		"Yes":        "はい",
	})
}
