package server

// Página única do dashboard: busca /api/metrics e desenha os gráficos no
// cliente com Chart.js. Sem framework de front, sem build step.
const dashboardHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Dashboard de Produtividade</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<style>
  body { font-family: sans-serif; margin: 2rem; background: #fafafa; }
  h1 { font-size: 1.4rem; }
  .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 2rem; max-width: 1100px; }
  .card { background: #fff; border: 1px solid #ddd; border-radius: 8px; padding: 1rem; }
  #status { color: #888; font-size: 0.9rem; }
</style>
</head>
<body>
<h1>Produtividade dos Editores</h1>
<p id="status">Carregando métricas (a primeira coleta dispara o browser, pode demorar)...</p>
<div class="grid">
  <div class="card"><canvas id="commentsChart"></canvas></div>
  <div class="card"><canvas id="categoriesChart"></canvas></div>
</div>
<script>
async function load() {
  const res = await fetch('/api/metrics');
  if (!res.ok) {
    document.getElementById('status').textContent = 'Erro carregando métricas: ' + res.status;
    return;
  }
  const dash = await res.json();
  document.getElementById('status').textContent =
    dash.total_tasks + ' tasks, ' + dash.total_comments + ' comentários (gerado em ' + dash.generated_at + ')';

  const editors = dash.editors || [];
  new Chart(document.getElementById('commentsChart'), {
    type: 'bar',
    data: {
      labels: editors.map(e => e.editor),
      datasets: [
        { label: 'Comentários recebidos', data: editors.map(e => e.comments_received) },
        { label: 'Tasks com review', data: editors.map(e => e.tasks_with_review) }
      ]
    }
  });

  const totals = dash.category_totals || {};
  new Chart(document.getElementById('categoriesChart'), {
    type: 'doughnut',
    data: {
      labels: Object.keys(totals),
      datasets: [{ data: Object.values(totals) }]
    }
  });
}
load();
</script>
</body>
</html>
`
