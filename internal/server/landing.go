package server

const landingPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>AutoInsight</title>
<style>
body { font-family: sans-serif; max-width: 40rem; margin: 3rem auto; }
form { margin-bottom: 2rem; padding: 1rem; border: 1px solid #ccc; border-radius: 6px; }
</style>
</head>
<body>
<h1>AutoInsight</h1>
<p>Upload a CSV or XLSX file to profile it.</p>
<form action="/analyze" method="post" enctype="multipart/form-data">
<h2>Categorical analysis</h2>
<input type="file" name="file" accept=".csv,.xlsx" required>
<button type="submit">Analyze</button>
</form>
<form action="/analyzes" method="post" enctype="multipart/form-data">
<h2>Numerical analysis</h2>
<input type="file" name="file" accept=".csv,.xlsx" required>
<button type="submit">Analyze</button>
</form>
<p>Sentiment: <code>POST /predict</code> or <code>POST /predictes</code> with <code>{"text": "..."}</code>.</p>
</body>
</html>
`
