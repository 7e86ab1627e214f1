package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`(?i)\b(todo|fixme|not implemented|your code here|write your code|placeholder)\b|^\s*(pass|\.\.\.)\s*$`)

// HeuristicEvaluator 与语言无关的兜底评测器，仅在主评测器出错时使用
type HeuristicEvaluator struct{}

func NewHeuristicEvaluator() *HeuristicEvaluator {
	return &HeuristicEvaluator{}
}

func (e *HeuristicEvaluator) Name() string { return "heuristic" }

func (e *HeuristicEvaluator) Evaluate(ctx context.Context, sub Submission) (Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return Evaluation{}, err
	}
	code := strings.TrimSpace(sub.Content)
	if code == "" {
		return Evaluation{}, ErrEmptySubmission
	}

	var notes []string
	score := 0

	// length
	switch n := len(code); {
	case n >= 200:
		score += 25
	case n >= 80:
		score += 15
		notes = append(notes, "solution is fairly short")
	default:
		score += 5
		notes = append(notes, "solution is very short")
	}

	// line count
	lines := nonEmptyLines(code)
	if lines >= 5 {
		score += 25
	} else {
		score += lines * 5
		notes = append(notes, fmt.Sprintf("only %d non-empty lines", lines))
	}

	// bracket balance
	if bracketsBalanced(code) {
		score += 25
	} else {
		notes = append(notes, "brackets are unbalanced")
	}

	// indentation ratio
	ratio := indentationRatio(code)
	switch {
	case ratio >= 0.3:
		score += 25
	case ratio >= 0.1:
		score += 15
		notes = append(notes, "little indented structure")
	default:
		score += 5
		notes = append(notes, "no indented structure")
	}

	if hasPlaceholder(code) {
		score -= 30
		notes = append(notes, "placeholder text detected")
	}

	score = clampScore(score)
	feedback := fmt.Sprintf("Heuristic score %d/100.", score)
	if len(notes) > 0 {
		feedback += " Notes: " + strings.Join(notes, "; ") + "."
	}
	return Evaluation{Score: score, Feedback: feedback}, nil
}

func hasPlaceholder(code string) bool {
	for _, line := range strings.Split(code, "\n") {
		if placeholderPattern.MatchString(line) {
			return true
		}
	}
	return false
}

func bracketsBalanced(code string) bool {
	pairs := map[rune]rune{')': '(', ']': '[', '}': '{'}
	var stack []rune
	for _, r := range code {
		switch r {
		case '(', '[', '{':
			stack = append(stack, r)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[r] {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

// indentationRatio 缩进行占非空行的比例
func indentationRatio(code string) float64 {
	total, indented := 0, 0
	for _, line := range strings.Split(code, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		total++
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			indented++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(indented) / float64(total)
}
