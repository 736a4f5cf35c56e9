package service

import "fmt"

// TokenBlacklistKey is the Redis key marking a logged-out access token.
func TokenBlacklistKey(token string) string {
	return "jwt:blacklist:" + token
}

// AnalysisCacheKey is the Redis key holding the latest analysis of a file.
func AnalysisCacheKey(fileID string) string {
	return fmt.Sprintf("analysis:file:%s", fileID)
}
