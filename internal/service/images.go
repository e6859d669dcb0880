package service

import (
	"context"

	"go.uber.org/zap"
)

// ImageRemover deletes stored images by URL.
type ImageRemover interface {
	Owns(url string) bool
	Delete(ctx context.Context, url string) error
}

// removeImages deletes the given images from the store, best-effort. URLs the
// store does not hold (external links) are skipped; failures are only logged.
func removeImages(ctx context.Context, store ImageRemover, urls ...string) {
	if store == nil {
		return
	}

	for _, url := range urls {
		if url == "" || !store.Owns(url) {
			continue
		}
		if err := store.Delete(ctx, url); err != nil {
			zap.L().Warn("failed to delete image", zap.String("url", url), zap.Error(err))
		}
	}
}

// droppedImages lists the entries of before that are absent from after.
func droppedImages(before, after []string) []string {
	keep := make(map[string]struct{}, len(after))
	for _, url := range after {
		keep[url] = struct{}{}
	}

	var dropped []string
	for _, url := range before {
		if _, ok := keep[url]; !ok {
			dropped = append(dropped, url)
		}
	}
	return dropped
}
