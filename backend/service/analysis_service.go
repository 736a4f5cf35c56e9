package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"healthmate/backend/common"
	"healthmate/backend/library/ai"
	"healthmate/backend/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AnalyzeFile sends an owned file to the analyzer and stores the result.
func AnalyzeFile(ctx context.Context, userID string, fileID string) (*model.Analysis, error) {
	file, err := GetFile(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}

	result, err := ai.Default.Analyze(ctx, &ai.Request{
		FileURL:  file.FileURL,
		FileType: file.FileType,
		Filename: file.Filename,
	})
	if err != nil {
		recordFailedAnalysis(ctx, file, userID, err)
		return nil, fmt.Errorf("analysis of %s failed: %w", file.Filename, err)
	}

	analysis := &model.Analysis{
		ID:        uuid.NewString(),
		FileID:    file.ID,
		UserID:    userID,
		Model:     result.Model,
		Summary:   result.Summary,
		Findings:  string(result.Findings),
		Status:    model.AnalysisStatusCompleted,
		CreatedAt: time.Now().UTC(),
	}
	if err := model.Repo.CreateAnalysis(ctx, analysis); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	cacheAnalysis(ctx, analysis)
	return analysis, nil
}

// recordFailedAnalysis keeps a failed row so every request leaves a trace.
// Failed rows are never cached.
func recordFailedAnalysis(ctx context.Context, file *model.File, userID string, cause error) {
	analysis := &model.Analysis{
		ID:        uuid.NewString(),
		FileID:    file.ID,
		UserID:    userID,
		Summary:   cause.Error(),
		Status:    model.AnalysisStatusFailed,
		CreatedAt: time.Now().UTC(),
	}
	if err := model.Repo.CreateAnalysis(ctx, analysis); err != nil {
		common.SysError("failed to save failed analysis", "file_id", file.ID, "err", err)
	}
}

// ListAnalyses returns every analysis of an owned file, newest first.
func ListAnalyses(ctx context.Context, userID string, fileID string) ([]*model.Analysis, error) {
	if _, err := GetFile(ctx, userID, fileID); err != nil {
		return nil, err
	}
	return model.Repo.ListAnalysesByFile(ctx, fileID)
}

// LatestAnalysis returns the newest analysis of an owned file, served from
// Redis when cached. It returns nil without error when none exists.
func LatestAnalysis(ctx context.Context, userID string, fileID string) (*model.Analysis, error) {
	if _, err := GetFile(ctx, userID, fileID); err != nil {
		return nil, err
	}
	if cached := cachedAnalysis(ctx, fileID); cached != nil {
		return cached, nil
	}
	analyses, err := model.Repo.ListAnalysesByFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if len(analyses) == 0 {
		return nil, nil
	}
	cacheAnalysis(ctx, analyses[0])
	return analyses[0], nil
}

func cacheAnalysis(ctx context.Context, analysis *model.Analysis) {
	if !common.RedisEnabled || common.RDB == nil {
		return
	}
	data, err := json.Marshal(analysis)
	if err != nil {
		return
	}
	if err := common.RedisSet(ctx, AnalysisCacheKey(analysis.FileID), string(data), common.AnalysisCacheTTL); err != nil {
		common.SysError("failed to cache analysis", "file_id", analysis.FileID, "err", err)
	}
}

func cachedAnalysis(ctx context.Context, fileID string) *model.Analysis {
	if !common.RedisEnabled || common.RDB == nil {
		return nil
	}
	data, err := common.RedisGet(ctx, AnalysisCacheKey(fileID))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			common.SysError("failed to read analysis cache", "file_id", fileID, "err", err)
		}
		return nil
	}
	var analysis model.Analysis
	if err := json.Unmarshal([]byte(data), &analysis); err != nil {
		return nil
	}
	return &analysis
}
