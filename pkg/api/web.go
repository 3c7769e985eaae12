package api

var tmpl = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>YT Web Downloader</title>
    <style>
        :root { --bg: #121212; --card: #1e1e1e; --text: #e0e0e0; --accent: #ff4444; }
        body { background: var(--bg); color: var(--text); font-family: system-ui, sans-serif; display: grid; place-items: center; min-height: 100vh; margin: 0; }
        .container { background: var(--card); padding: 2rem; border-radius: 12px; box-shadow: 0 10px 30px rgba(0,0,0,0.5); width: 90%; max-width: 420px; text-align: center; }
        h1 { margin: 0 0 1rem; font-size: 1.5rem; color: var(--accent); }
        input { width: 100%; padding: 12px; margin: 10px 0; border: 1px solid #333; border-radius: 6px; background: #252525; color: #fff; box-sizing: border-box; outline: none; }
        input:focus { border-color: var(--accent); }
        button { width: 100%; padding: 12px; border: none; border-radius: 6px; background: var(--accent); color: white; font-weight: bold; cursor: pointer; }
        .msg { margin: 8px 0; padding: 8px 12px; border-radius: 6px; font-size: 0.9rem; text-align: left; }
        .msg-success { background: #1f3b24; color: #8fe39b; }
        .msg-info { background: #1d2f42; color: #8cc4f5; }
        .msg-warning { background: #42391d; color: #f5d68c; }
        .msg-error { background: #421d1d; color: #f58c8c; }
        .mode { margin-top: 14px; font-size: 0.8rem; color: #888; }
    </style>
</head>
<body>
    <div class="container">
        <h1>YouTube Downloader</h1>
        {{range .Messages}}<div class="msg msg-{{.Level}}">{{.Text}}</div>
        {{end}}
        <form method="post" action="/download">
            <input type="url" name="url" placeholder="Paste YouTube URL..." required>
            <button type="submit">Download</button>
        </form>
        <div class="mode" data-supports-merged-formats="{{.SupportsMergedFormats}}">
            {{if .SupportsMergedFormats}}HD mode: video and audio are merged into MP4.{{else}}Basic mode: ffmpeg not found, some HD formats might not be available.{{end}}
        </div>
    </div>
</body>
</html>
`
