package server

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>📦 Indian Customs RAG Assistant</title>
<style>
  body { font-family: sans-serif; max-width: 860px; margin: 0 auto; padding: 20px; }
  .banner { text-align: center; padding: 20px; background-color: #2E86C1; border-radius: 10px; color: white; }
  .info { background: #EBF5FB; border-radius: 10px; padding: 15px; margin: 20px 0; }
  .warning { background: #FDEBD0; border-radius: 10px; padding: 15px; margin: 20px 0; }
  .answer { padding: 15px; background: #F7F9F9; border-radius: 10px; white-space: pre-wrap; }
  input[type=text] { width: 70%; padding: 8px; }
  button { padding: 8px 20px; }
  footer { text-align: center; color: gray; font-size: 14px; margin-top: 40px; }
  hr { margin: 20px 0; }
</style>
</head>
<body>
<div class="banner">
  <h1>📦 Indian Customs RAG Assistant</h1>
  <p>Ask anything about Indian Customs Duty, Import-Export Taxes, Rules &amp; Regulations.</p>
</div>

<p>✅ Loaded {{.DocCount}} documents.</p>

<div class="info">
  <b>How to use this RAG bot:</b>
  <ol>
    <li>Type your question about customs duty in the input box below.</li>
    <li>Press <b>Ask</b> to get an answer based on the documents and reliable sources.</li>
    <li>The bot will give a summarized response and, if relevant, example calculations.</li>
  </ol>
</div>

{{if .Warning}}<div class="warning">⚠ {{.Warning}}</div>{{end}}

<p>Ask any question related to Indian customs duty:</p>
<form method="post" action="/ask">
  <input type="text" name="question" placeholder="e.g., What is the customs duty for importing laptops?">
  <button type="submit">Ask</button>
</form>

{{if .Answer}}
<h2>🧾 Answer</h2>
<div class="answer">{{.Answer}}</div>
{{end}}

{{range .History}}
<h3>❓ Question:</h3>
<p>{{.Question}}</p>
<h3>✅ Answer:</h3>
<div class="answer">{{.Answer}}</div>
<hr>
{{end}}

<footer>Answers are generated from the loaded documents only.</footer>
</body>
</html>
`
