package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Pipeline level messages (info)
		"Starting pipeline":               "パイプラインを開始します",
		"Pipeline completed successfully": "パイプラインが正常に完了しました",
		"Interrupted, shutting down...":   "中断されました。シャットダウン中...",

		// Catalog stage
		"Cataloging frames in %s":                   "%s のフレームをカタログ中",
		"Cataloged %d frames at %dx%d":              "%d フレームをカタログしました (%dx%d)",
		"No timestamp token in %s, using modification time": "%s にタイムスタンプがないため更新時刻を使用します",

		// Crop stage
		"Cropping %d frames to %d:%d with %d workers": "%d フレームを %d:%d に %d ワーカーでクロップ中",
		"Crop completed":                              "クロップが完了しました",

		// Overlay stage
		"Rendering overlay on %d frames with %d workers": "%d フレームに %d ワーカーでオーバーレイを描画中",
		"Overlay completed":                              "オーバーレイが完了しました",

		// Encode stage
		"Encoding %d frames at %.1f fps":  "%d フレームを %.1f fps でエンコード中",
		"Failed to save encoder log: %s":  "エンコーダーログの保存に失敗しました: %s",
		"Video encoded: %s (%d bytes)":    "動画をエンコードしました: %s (%d バイト)",
		"Output verification failed: %s":  "出力の検証に失敗しました: %s",
		"Output verified: %d ms, %dx%d":   "出力を検証しました: %d ms, %dx%d",

		// Failures
		"Failed to catalog frames: %s":  "フレームのカタログに失敗しました: %s",
		"Failed to crop frames: %s":     "フレームのクロップに失敗しました: %s",
		"Failed to render overlay: %s":  "オーバーレイの描画に失敗しました: %s",
		"Failed to encode video: %s":    "動画のエンコードに失敗しました: %s",
	})
}
