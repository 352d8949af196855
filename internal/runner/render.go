package runner

import (
	"fmt"
	"time"

	"github.com/community-analyzer/internal/analysis"
	"github.com/community-analyzer/internal/models"
	"github.com/community-analyzer/internal/output"
)

// markdownWithJSON returns a markdown artifact and its JSON twin
func markdownWithJSON(sc scope, filename, markdown string, v any) ([]output.Artifact, error) {
	data, err := output.JSON(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s results: %w", sc.variant, err)
	}
	return []output.Artifact{
		{
			Key:         output.Key(sc.variant, sc.serverName, filename),
			ContentType: output.ContentTypeMarkdown,
			Data:        []byte(markdown),
		},
		{
			Key:         output.Key(sc.variant, sc.serverName, output.JSONFilename(filename)),
			ContentType: output.ContentTypeJSON,
			Data:        data,
		},
	}, nil
}

func chatArtifacts(sc scope, h output.Header, res *analysis.Result[models.ChatAnalysis]) ([]output.Artifact, error) {
	filename := output.ChatFilename(sc.serverName, sc.channelNames, h.Range)
	return markdownWithJSON(sc, filename, output.ChatMarkdown(h, res.Final), res.Final)
}

// insightReport is the JSON shape of an insight run
type insightReport struct {
	Overview models.InsightAnalysis   `json:"overview"`
	Chunks   []models.InsightAnalysis `json:"chunks"`
}

func insightArtifacts(sc scope, h output.Header, res *analysis.Result[models.InsightAnalysis]) ([]output.Artifact, error) {
	filename := output.InsightFilename(sc.channelNames, h.Range)
	markdown := output.InsightMarkdown(h, res.Final, res.Units)
	return markdownWithJSON(sc, filename, markdown, insightReport{Overview: res.Final, Chunks: res.Units})
}

func taskArtifacts(sc scope, h output.Header, res *analysis.Result[models.TaskAnalysis], today time.Time) ([]output.Artifact, error) {
	filename := output.TaskFilename(sc.serverName, sc.channelNames, today)
	return markdownWithJSON(sc, filename, output.TaskMarkdown(h, res.Final), res.Final)
}

func rewardArtifacts(sc scope, res *analysis.Result[models.RewardAnalysis]) ([]output.Artifact, error) {
	data, err := output.RewardsCSV(res.Final)
	if err != nil {
		return nil, fmt.Errorf("failed to render rewards: %w", err)
	}
	filename := output.RewardFilename(sc.serverName, sc.channelNames, sc.start)
	return []output.Artifact{{
		Key:         output.Key(sc.variant, sc.serverName, filename),
		ContentType: output.ContentTypeCSV,
		Data:        data,
	}}, nil
}
