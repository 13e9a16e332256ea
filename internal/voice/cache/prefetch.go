package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
)

// Prefetch synthesizes every distinct text on a bounded worker pool and
// returns the artifacts in input order. Duplicate texts are synthesized
// once. The first error stops the remaining work.
func (c *Cache) Prefetch(ctx context.Context, texts []string) ([]Artifact, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool, err := ants.NewPool(c.config.PrefetchWorkers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	seen := make(map[string]bool, len(texts))
	var unique []string
	for _, text := range texts {
		if !seen[text] {
			seen[text] = true
			unique = append(unique, text)
		}
	}
	results := make(map[string]Artifact, len(unique))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, text := range unique {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}

			artifact, err := c.Synthesize(ctx, text)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				return
			}
			results[text] = artifact
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to submit narration: %w", err)
			}
			mu.Unlock()
			break
		}
	}
	wg.Wait()

	if firstErr == nil {
		firstErr = ctx.Err()
	}
	if firstErr != nil {
		return nil, firstErr
	}

	artifacts := make([]Artifact, len(texts))
	for i, text := range texts {
		artifacts[i] = results[text]
	}

	logrus.WithFields(logrus.Fields{
		"texts":   len(texts),
		"unique":  len(unique),
		"workers": c.config.PrefetchWorkers,
	}).Info("Prefetched narration")

	return artifacts, nil
}
