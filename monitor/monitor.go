package monitor

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// RegisterMonitorPage serves a small status page that polls /api/v1/health
// and tails the log file using the token from its own query string.
func RegisterMonitorPage(router *gin.Engine) {
	router.GET("/monitor", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>PMO Review API Monitor</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body {
      background: #12131a;
      color: #e0e0e0;
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
      padding: 20px;
    }
    .container { max-width: 1100px; margin: 0 auto; }
    h1 { font-size: 2rem; margin-bottom: 1.5rem; color: #a5b4fc; }
    .card {
      background: rgba(255, 255, 255, 0.04);
      border: 1px solid rgba(255, 255, 255, 0.1);
      border-radius: 12px;
      padding: 1.25rem;
      margin-bottom: 1.5rem;
    }
    .logs-header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 1rem; }
    #logs {
      background: rgba(0, 0, 0, 0.3);
      padding: 1rem;
      border-radius: 8px;
      max-height: 500px;
      overflow-y: auto;
      white-space: pre-wrap;
      font-family: 'Consolas', 'Courier New', monospace;
      font-size: 0.85rem;
      color: #cbd5e1;
    }
    button {
      padding: 0.5rem 1.25rem;
      background: #667eea;
      color: #fff;
      border: none;
      border-radius: 6px;
      cursor: pointer;
      font-weight: 600;
    }
    button.paused { background: #f5576c; }
  </style>
</head>
<body>
  <div class="container">
    <h1>PMO Review API</h1>

    <div class="card">
      <div id="status">Status: checking...</div>
    </div>

    <div class="card">
      <div class="logs-header">
        <strong>Server logs</strong>
        <button onclick="toggleLive()" id="toggleBtn">Pause</button>
      </div>
      <pre id="logs">Loading logs...</pre>
    </div>
  </div>

  <script>
    const token = new URLSearchParams(window.location.search).get('token') || '';
    let live = true;
    const logsEl = document.getElementById('logs');
    const statusEl = document.getElementById('status');
    const toggleBtn = document.getElementById('toggleBtn');

    function fetchStatus() {
      fetch('/api/v1/health')
        .then(res => res.json())
        .then(data => { statusEl.textContent = 'Status: ' + (data.status === 'ok' ? 'online' : 'degraded'); })
        .catch(() => { statusEl.textContent = 'Status: offline'; });
    }

    function fetchLogs() {
      if (!live) return;
      fetch('/logs?token=' + encodeURIComponent(token))
        .then(res => res.text())
        .then(data => {
          logsEl.textContent = data;
          logsEl.scrollTop = logsEl.scrollHeight;
        });
    }

    function toggleLive() {
      live = !live;
      toggleBtn.textContent = live ? 'Pause' : 'Resume';
      toggleBtn.classList.toggle('paused', !live);
    }

    fetchStatus();
    fetchLogs();
    setInterval(fetchStatus, 5000);
    setInterval(fetchLogs, 5000);
  </script>
</body>
</html>`))
	})
}

// RegisterLogsRoute exposes the log file to holders of token. An empty token
// disables the route.
func RegisterLogsRoute(router *gin.Engine, token, path string) {
	router.GET("/logs", func(c *gin.Context) {
		if token == "" || c.Query("token") != token {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		logData, err := os.ReadFile(path)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read log"})
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", logData)
	})
}

// RegisterMetricsRoute mounts the Prometheus scrape endpoint.
func RegisterMetricsRoute(router *gin.Engine, m *Metrics) {
	router.GET("/metrics", gin.WrapH(m.Handler()))
}
