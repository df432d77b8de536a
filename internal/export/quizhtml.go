package export

import (
	"html/template"
	"strings"

	"github.com/luminastudy/studygen/internal/artifact"
)

var quizTemplate = template.Must(template.New("quiz").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Quiz: {{.Meta.Filename}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; background: #f4f4f8; padding: 2rem; }
.container { max-width: 800px; margin: 0 auto; background: white; border-radius: 12px; padding: 2rem; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
h1 { color: #4a55a2; margin-bottom: 0.5rem; }
.metadata { color: #666; margin-bottom: 2rem; padding-bottom: 1rem; border-bottom: 2px solid #f0f0f0; }
.question { margin-bottom: 2rem; padding: 1.5rem; background: #f9f9f9; border-radius: 8px; border-left: 4px solid #4a55a2; }
.question-text { font-weight: 600; margin-bottom: 1rem; }
.options { list-style: none; }
.option { padding: 0.75rem 1rem; margin: 0.5rem 0; background: white; border: 1px solid #e0e0e0; border-radius: 6px; }
.explanation { margin-top: 1rem; padding: 1rem; background: #e8f5e9; border-radius: 6px; display: none; }
.explanation.show { display: block; }
.show-answer-btn { margin-top: 1rem; padding: 0.5rem 1rem; background: #4a55a2; color: white; border: none; border-radius: 6px; cursor: pointer; }
.correct-answer { color: #2e7d32; font-weight: 600; }
</style>
</head>
<body>
<div class="container">
<h1>Practice Quiz</h1>
<div class="metadata">
<strong>Document:</strong> {{.Meta.Filename}}<br>
<strong>Questions:</strong> {{len .Quiz.Questions}}
</div>
{{range $i, $q := .Quiz.Questions}}
<div class="question">
<div class="question-text">{{inc $i}}. {{$q.Question}}</div>
<ul class="options">
{{range $q.Options}}<li class="option">{{.}}</li>
{{end}}</ul>
<button class="show-answer-btn" onclick="toggleAnswer({{inc $i}})">Show Answer</button>
<div class="explanation" id="explanation-{{inc $i}}">
<div class="correct-answer">Correct Answer: {{$q.CorrectAnswer}}</div>
<p>{{$q.Explanation}}</p>
</div>
</div>
{{end}}
</div>
<script>
function toggleAnswer(n) {
  document.getElementById('explanation-' + n).classList.toggle('show');
}
</script>
</body>
</html>
`))

// quizHTML renders the quiz as a standalone interactive page. Question
// and option text is escaped by html/template; the backend's output is
// untrusted.
func quizHTML(quiz artifact.Quiz, meta Meta) (string, error) {
	var sb strings.Builder
	err := quizTemplate.Execute(&sb, struct {
		Meta Meta
		Quiz artifact.Quiz
	}{Meta: meta, Quiz: quiz})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
