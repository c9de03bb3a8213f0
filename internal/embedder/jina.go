package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const jinaURL = "https://api.jina.ai/v1/embeddings"

type jina struct {
	apiKey string
	model  string
	client *http.Client
}

type jinaRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type jinaResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func newJina(apiKey, model string) *jina {
	return &jina{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: requestTimeout},
	}
}

func (j *jina) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	reqBody := jinaRequest{
		Model: j.model,
		Input: text,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", jinaURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+j.apiKey)

	resp, err := j.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("jina error (status %d): %s", resp.StatusCode, string(body))
	}

	var jinaResp jinaResponse
	if err := json.Unmarshal(body, &jinaResp); err != nil {
		return nil, err
	}

	if len(jinaResp.Data) == 0 {
		return nil, fmt.Errorf("jina returned no embeddings")
	}

	return jinaResp.Data[0].Embedding, nil
}
