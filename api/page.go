package api

import (
	"bytes"
	"html/template"

	model "github.com/stenstromen/bioportal/model"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Bio Portal</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            min-height: 100vh;
            margin: 0;
            background-color: #f4f4f4;
        }
        .box {
            background: white;
            padding: 20px;
            border-radius: 8px;
            box-shadow: 0 4px 8px rgba(0,0,0,0.1);
            width: 340px;
        }
        label {
            display: block;
            margin-bottom: 5px;
        }
        input[type="text"], input[type="password"], textarea {
            width: 100%;
            box-sizing: border-box;
            padding: 10px;
            margin-bottom: 15px;
            border: 1px solid #ccc;
            border-radius: 4px;
        }
        button {
            background-color: #007bff;
            color: white;
            padding: 10px;
            border: none;
            border-radius: 4px;
            cursor: pointer;
        }
        button:hover {
            background-color: #0056b3;
        }
        button.danger {
            background-color: #dc3545;
        }
        .status {
            margin-top: 10px;
            min-height: 1.2em;
        }
        .hidden {
            display: none;
        }
    </style>
</head>
<body>
<div class="box">
    <div id="step1">
        <h2>Connect your token</h2>
        <label for="token">Token:</label>
        <input type="password" id="token" autocomplete="off">
        <label for="label">Label:</label>
        <input type="text" id="label" placeholder="{{.DefaultLabel}}">
        <button id="saveBtn">Save</button>
        <div id="saveStatus" class="status"></div>
    </div>
    <div id="dashboard" class="hidden">
        <h2>Dashboard</h2>
        <p>Token id: <span id="tokenId"></span></p>
        <p>Current bio: <span id="currentBio"></span></p>
        <label for="newBio">New bio:</label>
        <textarea id="newBio" rows="3"></textarea>
        <button id="updateBtn">Update bio</button>
        <div id="updateStatus" class="status"></div>
        <hr>
        <button id="deleteBtn" class="danger">Delete token</button>
    </div>
</div>
<script>
const DEFAULT_LABEL = {{.DefaultLabel}};
const session = { tokenId: null };

async function post(path, body) {
    const res = await fetch(path, {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify(body)
    });
    return res.json();
}

function status(id, text) {
    document.getElementById(id).textContent = text;
}

document.getElementById('saveBtn').onclick = async function () {
    const token = document.getElementById('token').value.trim();
    const label = document.getElementById('label').value.trim() || DEFAULT_LABEL;
    status('saveStatus', 'Saving...');
    try {
        const data = await post('/api/save-token', { token: token, label: label });
        if (data.ok && data.id !== undefined) {
            status('saveStatus', 'Token saved successfully ✅');
            session.tokenId = data.id;
            document.getElementById('tokenId').textContent = data.id;
            document.getElementById('step1').classList.add('hidden');
            document.getElementById('dashboard').classList.remove('hidden');
        } else {
            status('saveStatus', 'Error: ' + (data.error || JSON.stringify(data)));
        }
    } catch (err) {
        console.error(err);
        status('saveStatus', 'Could not reach the server');
    }
};

document.getElementById('updateBtn').onclick = async function () {
    const newBio = document.getElementById('newBio').value;
    status('updateStatus', 'Updating...');
    try {
        const data = await post('/api/update-bio', { id: session.tokenId, newBio: newBio });
        if (data.ok) {
            status('updateStatus', 'Bio updated successfully ✅');
            document.getElementById('currentBio').textContent = newBio;
        } else {
            status('updateStatus', 'Error: ' + (data.error || JSON.stringify(data)));
        }
    } catch (err) {
        console.error(err);
        status('updateStatus', 'Could not reach the server');
    }
};

document.getElementById('deleteBtn').onclick = async function () {
    if (!confirm('Are you sure you want to delete the token?')) {
        return;
    }
    try {
        const data = await post('/api/delete-token', { id: session.tokenId });
        if (data.ok) {
            alert('Token deleted');
            location.reload();
        } else {
            alert('Delete failed');
        }
    } catch (err) {
        console.error(err);
        alert('An error occurred while deleting');
    }
};
</script>
</body>
</html>
`))

func indexPage() (string, error) {
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, model.PageData{DefaultLabel: model.DefaultLabel}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
