package service

import (
	"context"
	"devcollab_backend/internal/model"
	"fmt"
	"regexp"
	"strings"
)

// languageFeatures 各语言的结构特征
type languageFeatures struct {
	definition  *regexp.Regexp
	controlFlow *regexp.Regexp
	output      *regexp.Regexp
	comment     *regexp.Regexp
	variable    *regexp.Regexp
}

type featureWeight struct {
	name   string
	weight int
	match  func(f *languageFeatures, code string) bool
	hint   string
}

var featureWeights = []featureWeight{
	{"definition", 25, func(f *languageFeatures, code string) bool { return f.definition.MatchString(code) }, "define at least one function or type"},
	{"control_flow", 20, func(f *languageFeatures, code string) bool { return f.controlFlow.MatchString(code) }, "use control flow (conditions or loops)"},
	{"output", 20, func(f *languageFeatures, code string) bool { return f.output.MatchString(code) }, "return or print a result"},
	{"variables", 15, func(f *languageFeatures, code string) bool { return f.variable.MatchString(code) }, "declare variables for intermediate state"},
	{"comments", 10, func(f *languageFeatures, code string) bool { return f.comment.MatchString(code) }, "add comments explaining the approach"},
	{"substance", 10, func(_ *languageFeatures, code string) bool { return nonEmptyLines(code) >= 5 }, "the solution looks too short"},
}

var cStyleComment = regexp.MustCompile(`(?m)//|/\*`)

var features = map[string]*languageFeatures{
	"go": {
		definition:  regexp.MustCompile(`(?m)^\s*func\s|^\s*type\s+\w+\s+(struct|interface)`),
		controlFlow: regexp.MustCompile(`\b(if|for|switch|select)\b`),
		output:      regexp.MustCompile(`\breturn\b|fmt\.(Print|Fprint|Sprint)`),
		comment:     cStyleComment,
		variable:    regexp.MustCompile(`:=|\bvar\s+\w+`),
	},
	"python": {
		definition:  regexp.MustCompile(`(?m)^\s*(def|class)\s+\w+`),
		controlFlow: regexp.MustCompile(`(?m)^\s*(if|for|while|elif|try|with)\b`),
		output:      regexp.MustCompile(`\breturn\b|\bprint\s*\(|\byield\b`),
		comment:     regexp.MustCompile(`(?m)#|"""|'''`),
		variable:    regexp.MustCompile(`(?m)^\s*[A-Za-z_]\w*(\s*,\s*[A-Za-z_]\w*)*\s*=[^=]`),
	},
	"javascript": {
		definition:  regexp.MustCompile(`\bfunction\b|=>|\bclass\s+\w+`),
		controlFlow: regexp.MustCompile(`\b(if|for|while|switch)\b`),
		output:      regexp.MustCompile(`\breturn\b|console\.log`),
		comment:     cStyleComment,
		variable:    regexp.MustCompile(`\b(let|const|var)\s+\w+`),
	},
	"typescript": {
		definition:  regexp.MustCompile(`\bfunction\b|=>|\b(class|interface)\s+\w+`),
		controlFlow: regexp.MustCompile(`\b(if|for|while|switch)\b`),
		output:      regexp.MustCompile(`\breturn\b|console\.log`),
		comment:     cStyleComment,
		variable:    regexp.MustCompile(`\b(let|const|var)\s+\w+`),
	},
	"java": {
		definition:  regexp.MustCompile(`\b(public|private|protected|static)\b[^;{]*\(|\bclass\s+\w+`),
		controlFlow: regexp.MustCompile(`\b(if|for|while|switch)\b`),
		output:      regexp.MustCompile(`\breturn\b|System\.out\.print`),
		comment:     cStyleComment,
		variable:    regexp.MustCompile(`\b(int|long|double|boolean|char|String|var|[A-Z]\w*(<[^>]*>)?)\s+\w+\s*(=|;)`),
	},
	"c": {
		definition:  regexp.MustCompile(`(?m)^\s*\w[\w\s\*]*\s\**\w+\s*\([^;]*\)\s*\{?\s*$`),
		controlFlow: regexp.MustCompile(`\b(if|for|while|switch)\b`),
		output:      regexp.MustCompile(`\breturn\b|\bprintf\s*\(|\bputs\s*\(`),
		comment:     cStyleComment,
		variable:    regexp.MustCompile(`\b(int|long|float|double|char|short|unsigned|size_t)\s+\**\w+`),
	},
	"cpp": {
		definition:  regexp.MustCompile(`(?m)^\s*\w[\w\s\*&:<>]*\s[\*&]*\w+\s*\([^;]*\)\s*(const)?\s*\{?\s*$|\bclass\s+\w+`),
		controlFlow: regexp.MustCompile(`\b(if|for|while|switch)\b`),
		output:      regexp.MustCompile(`\breturn\b|\bcout\b|\bprintf\s*\(`),
		comment:     cStyleComment,
		variable:    regexp.MustCompile(`\b(int|long|float|double|char|bool|auto|std::\w+|string|vector<[^>]*>)\s+\w+`),
	},
	"rust": {
		definition:  regexp.MustCompile(`\bfn\s+\w+|\b(struct|enum|trait|impl)\b`),
		controlFlow: regexp.MustCompile(`\b(if|for|while|loop|match)\b`),
		output:      regexp.MustCompile(`(?m)\breturn\b|println!|print!|^\s*[\w\.\(\)]+\s*$`),
		comment:     cStyleComment,
		variable:    regexp.MustCompile(`\blet\s+(mut\s+)?\w+`),
	},
}

// FeatureEvaluator 按语言结构特征加权打分的主评测器
type FeatureEvaluator struct{}

func NewFeatureEvaluator() *FeatureEvaluator {
	return &FeatureEvaluator{}
}

func (e *FeatureEvaluator) Name() string { return "feature" }

func (e *FeatureEvaluator) Evaluate(ctx context.Context, sub Submission) (Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return Evaluation{}, err
	}
	lang := model.NormalizeLanguage(sub.Language)
	f, ok := features[lang]
	if !ok {
		return Evaluation{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, sub.Language)
	}
	if strings.TrimSpace(sub.Content) == "" {
		return Evaluation{}, ErrEmptySubmission
	}

	score := 0
	var missing []string
	for _, fw := range featureWeights {
		if fw.match(f, sub.Content) {
			score += fw.weight
		} else {
			missing = append(missing, fw.hint)
		}
	}

	feedback := fmt.Sprintf("Structural score %d/100 for %s.", score, lang)
	if len(missing) > 0 {
		feedback += " Suggestions: " + strings.Join(missing, "; ") + "."
	} else {
		feedback += " All expected structural elements are present."
	}
	return Evaluation{Score: score, Feedback: feedback}, nil
}

func nonEmptyLines(code string) int {
	n := 0
	for _, line := range strings.Split(code, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
