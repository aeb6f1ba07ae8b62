package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	assert.NotNil(t, hub)
	assert.Equal(t, 0, hub.ConnectionCount())
}

func TestHub_IsOnline_NoConnections(t *testing.T) {
	hub := NewHub()

	online := hub.IsOnline(123)
	assert.False(t, online)
}

func TestHub_SendToUser_UserNotOnline(t *testing.T) {
	hub := NewHub()

	msg := &Message{
		Type: "payment",
		Data: map[string]string{"key": "value"},
	}

	// 离线用户不报错，静默丢弃
	err := hub.SendToUser(123, msg)
	assert.NoError(t, err)
}

func TestHub_SendToRole_NoMatch(t *testing.T) {
	hub := NewHub()

	err := hub.SendToRole(model.RoleLibrarian, &Message{Type: "payment"})
	assert.NoError(t, err)
}

// dialTestClient 通过 httptest 建立一条真实的 websocket 连接
func dialTestClient(t *testing.T, hub *Hub, userID int64, role string) (*websocket.Conn, func()) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		client := &Client{UserID: userID, Role: role, Conn: conn}
		hub.Register(client)
	}))

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	cleanup := func() {
		conn.Close()
		server.Close()
	}
	return conn, cleanup
}

func TestHub_RegisterAndSend(t *testing.T) {
	hub := NewHub()

	conn, cleanup := dialTestClient(t, hub, 42, model.RoleStudent)
	defer cleanup()

	// 等待服务端完成注册
	require.Eventually(t, func() bool { return hub.IsOnline(42) }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, hub.ConnectionCount())

	err := hub.SendToUser(42, &Message{Type: "payment", Data: map[string]interface{}{"amount": 20.0}})
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"payment"`)
}

func TestHub_SendToRole(t *testing.T) {
	hub := NewHub()

	librarianConn, cleanup1 := dialTestClient(t, hub, 1, model.RoleLibrarian)
	defer cleanup1()
	studentConn, cleanup2 := dialTestClient(t, hub, 2, model.RoleStudent)
	defer cleanup2()

	require.Eventually(t, func() bool { return hub.ConnectionCount() == 2 }, time.Second, 10*time.Millisecond)

	err := hub.SendToRole(model.RoleLibrarian, &Message{Type: "ledger"})
	require.NoError(t, err)

	librarianConn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := librarianConn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"ledger"`)

	// 学生连接不应收到馆员消息
	studentConn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = studentConn.ReadMessage()
	assert.Error(t, err)
}
