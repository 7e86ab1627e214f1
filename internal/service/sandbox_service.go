package service

import (
	"bytes"
	"context"
	"devcollab_backend/internal/config"
	"devcollab_backend/internal/model"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SandboxRunner 外部代码沙箱，可用时其结果优先于启发式评测链
type SandboxRunner interface {
	Run(ctx context.Context, sub Submission) (Evaluation, error)
}

var ErrNoTestSpec = errors.New("challenge has no runnable test spec")

// TestCase 题目 TestSpec 中的单个用例
type TestCase struct {
	Stdin    string `json:"stdin"`
	Expected string `json:"expected"`
}

type TestSpec struct {
	Cases []TestCase `json:"cases"`
}

// judge0 语言编号
var judge0Languages = map[string]int{
	"c":          50,
	"cpp":        54,
	"go":         60,
	"java":       62,
	"javascript": 63,
	"python":     71,
	"rust":       73,
	"typescript": 74,
}

const judge0StatusAccepted = 3

// SandboxService Judge0 兼容的 HTTP 客户端
type SandboxService struct {
	config config.SandboxConfig
	client *http.Client
}

func NewSandboxService(cfg config.SandboxConfig) *SandboxService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SandboxService{
		config: cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type judge0Request struct {
	SourceCode     string `json:"source_code"`
	LanguageID     int    `json:"language_id"`
	Stdin          string `json:"stdin,omitempty"`
	ExpectedOutput string `json:"expected_output,omitempty"`
}

type judge0Response struct {
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output"`
	Status        struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
}

func (s *SandboxService) Run(ctx context.Context, sub Submission) (Evaluation, error) {
	if sub.Challenge == nil || len(sub.Challenge.TestSpec) == 0 {
		return Evaluation{}, ErrNoTestSpec
	}
	var spec TestSpec
	if err := json.Unmarshal(sub.Challenge.TestSpec, &spec); err != nil {
		return Evaluation{}, fmt.Errorf("decode test spec: %w", err)
	}
	if len(spec.Cases) == 0 {
		return Evaluation{}, ErrNoTestSpec
	}
	langID, ok := judge0Languages[model.NormalizeLanguage(sub.Language)]
	if !ok {
		return Evaluation{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, sub.Language)
	}

	passed := 0
	var failures []string
	for i, tc := range spec.Cases {
		resp, err := s.submit(ctx, judge0Request{
			SourceCode:     sub.Content,
			LanguageID:     langID,
			Stdin:          tc.Stdin,
			ExpectedOutput: tc.Expected,
		})
		if err != nil {
			return Evaluation{}, err
		}
		if resp.Status.ID == judge0StatusAccepted {
			passed++
			continue
		}
		failures = append(failures, fmt.Sprintf("case %d: %s", i+1, resp.Status.Description))
	}

	total := len(spec.Cases)
	score := passed * 100 / total
	feedback := fmt.Sprintf("Passed %d/%d test cases.", passed, total)
	if len(failures) > 0 {
		feedback += " " + strings.Join(failures, "; ") + "."
	}
	return Evaluation{
		Score:    score,
		Passed:   passed == total,
		Feedback: feedback,
	}, nil
}

func (s *SandboxService) submit(ctx context.Context, body judge0Request) (*judge0Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(s.config.URL, "/") + "/submissions?base64_encoded=false&wait=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		req.Header.Set("X-RapidAPI-Key", s.config.APIKey)
	}
	if s.config.Host != "" {
		req.Header.Set("X-RapidAPI-Host", s.config.Host)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("sandbox error (status %d): %s", resp.StatusCode, string(b))
	}

	var out judge0Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode sandbox response: %w", err)
	}
	return &out, nil
}
