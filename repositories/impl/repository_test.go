package impl

import (
	"TeamChat/models"
	"TeamChat/repositories"
	"TeamChat/testutil"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedChat(t *testing.T, db *gorm.DB, creator string, updatedAt int64) models.Chat {
	t.Helper()
	chat := &models.Chat{Name: "general", CreatedBy: creator, CreatedAt: updatedAt, UpdatedAt: updatedAt, Category: models.CategoryCompanyWide}
	member := &models.ChatMember{UserID: creator, Role: models.RoleAdmin, JoinedAt: updatedAt}
	require.NoError(t, NewChatRepository(db).CreateWithCreator(context.Background(), chat, member))
	return *chat
}

func TestCreateWithCreator(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	chat := seedChat(t, db, "u1", 100)
	require.NotEmpty(t, chat.ID)

	got, err := repo.FindByID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.CreatedAt)
	assert.Equal(t, int64(100), got.UpdatedAt)

	member, err := repo.FindMember(ctx, chat.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, member.Role)
	assert.False(t, member.IsMuted)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestListPageOrdersByUpdatedAtThenID(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	for _, c := range []models.Chat{
		{ID: "a", UpdatedAt: 10},
		{ID: "b", UpdatedAt: 20},
		{ID: "c", UpdatedAt: 20},
		{ID: "d", UpdatedAt: 5},
	} {
		c.Name, c.CreatedBy, c.Category, c.CreatedAt = "n", "u1", models.CategoryProject, c.UpdatedAt
		require.NoError(t, db.Create(&c).Error)
	}

	first, err := repo.ListPage(ctx, 2, nil)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "c", first[0].ID)
	assert.Equal(t, "b", first[1].ID)

	rest, err := repo.ListPage(ctx, 10, &repositories.ChatKey{UpdatedAt: 20, ID: "b"})
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, "a", rest[0].ID)
	assert.Equal(t, "d", rest[1].ID)
}

func TestMessageCreateBumpsChat(t *testing.T) {
	db := testutil.NewDB(t)
	chats := NewChatRepository(db)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	chat := seedChat(t, db, "u1", 100)

	msg := &models.Message{ChatID: chat.ID, SenderID: "u1", Content: "hi", Timestamp: 250}
	require.NoError(t, messages.Create(ctx, msg))

	got, err := chats.FindByID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(250), got.UpdatedAt)

	// an older timestamp never moves updated_at back
	require.NoError(t, messages.Create(ctx, &models.Message{ChatID: chat.ID, SenderID: "u1", Content: "late", Timestamp: 200}))
	got, err = chats.FindByID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(250), got.UpdatedAt)
}

func TestReadReceiptsAreIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	chat := seedChat(t, db, "u1", 1)
	var ids []string
	for i := int64(1); i <= 3; i++ {
		m := &models.Message{ChatID: chat.ID, SenderID: "u1", Content: "m", Timestamp: i}
		require.NoError(t, messages.Create(ctx, m))
		ids = append(ids, m.ID)
	}

	added, err := messages.InsertRead(ctx, ids[0], "u2", 10)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = messages.InsertRead(ctx, ids[0], "u2", 11)
	require.NoError(t, err)
	assert.False(t, added)

	n, err := messages.InsertReads(ctx, ids, "u2", 12)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = messages.InsertReads(ctx, ids, "u2", 13)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	var count int64
	require.NoError(t, db.Model(&models.MessageRead{}).Where("user_id = ?", "u2").Count(&count).Error)
	assert.Equal(t, int64(3), count)

	read, err := messages.FindReadMessageIDs(ctx, "u2", ids)
	require.NoError(t, err)
	assert.Len(t, read, 3)

	read, err = messages.FindReadMessageIDs(ctx, "u3", ids)
	require.NoError(t, err)
	assert.Empty(t, read)
}

func TestSoftDeletedMessagesAreHidden(t *testing.T) {
	db := testutil.NewDB(t)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	chat := seedChat(t, db, "u1", 1)
	keep := &models.Message{ChatID: chat.ID, SenderID: "u1", Content: "keep", Timestamp: 2}
	drop := &models.Message{ChatID: chat.ID, SenderID: "u1", Content: "drop", Timestamp: 3}
	require.NoError(t, messages.Create(ctx, keep))
	require.NoError(t, messages.Create(ctx, drop))

	require.NoError(t, messages.SoftDelete(ctx, drop.ID, 4))
	assert.ErrorIs(t, messages.SoftDelete(ctx, drop.ID, 5), repositories.ErrNotFound)

	list, err := messages.ListByChat(ctx, chat.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)

	ids, err := messages.ListIDsByChat(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, ids)

	recent, err := messages.ListRecent(ctx, chat.ID, 5)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestToggleReactionAndPin(t *testing.T) {
	db := testutil.NewDB(t)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	chat := seedChat(t, db, "u1", 1)
	msg := &models.Message{ChatID: chat.ID, SenderID: "u1", Content: "m", Timestamp: 2}
	require.NoError(t, messages.Create(ctx, msg))

	set, err := messages.ToggleReaction(ctx, msg.ID, "u2", "👍", 3)
	require.NoError(t, err)
	assert.True(t, set)

	set, err = messages.ToggleReaction(ctx, msg.ID, "u2", "👍", 4)
	require.NoError(t, err)
	assert.False(t, set)

	require.NoError(t, messages.SetPinned(ctx, msg.ID, true, "u2", 5))
	got, err := messages.FindByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPinned)
	require.NotNil(t, got.PinnedBy)
	assert.Equal(t, "u2", *got.PinnedBy)

	require.NoError(t, messages.SetPinned(ctx, msg.ID, false, "u2", 6))
	got, err = messages.FindByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPinned)
	assert.Nil(t, got.PinnedBy)
	assert.Nil(t, got.PinnedAt)

	assert.ErrorIs(t, messages.SetPinned(ctx, "missing", true, "u2", 7), repositories.ErrNotFound)
}

func TestReactionsAreUniquePerUserAndEmoji(t *testing.T) {
	db := testutil.NewDB(t)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	chat := seedChat(t, db, "u1", 1)
	msg := &models.Message{ChatID: chat.ID, SenderID: "u1", Content: "m", Timestamp: 2}
	require.NoError(t, messages.Create(ctx, msg))

	set, err := messages.ToggleReaction(ctx, msg.ID, "u2", "👍", 3)
	require.NoError(t, err)
	assert.True(t, set)
	set, err = messages.ToggleReaction(ctx, msg.ID, "u2", "🎉", 3)
	require.NoError(t, err)
	assert.True(t, set)

	dup := &models.MessageReaction{MessageID: msg.ID, UserID: "u2", Reaction: "👍", Timestamp: 4}
	assert.Error(t, db.Create(dup).Error)

	var n int64
	require.NoError(t, db.Model(&models.MessageReaction{}).Where("message_id = ?", msg.ID).Count(&n).Error)
	assert.Equal(t, int64(2), n)
}

func TestDeleteCascade(t *testing.T) {
	db := testutil.NewDB(t)
	chats := NewChatRepository(db)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	chat := seedChat(t, db, "u1", 1)
	other := seedChat(t, db, "u1", 1)

	msg := &models.Message{ChatID: chat.ID, SenderID: "u1", Content: "m", Timestamp: 2}
	require.NoError(t, messages.Create(ctx, msg))
	otherMsg := &models.Message{ChatID: other.ID, SenderID: "u1", Content: "m", Timestamp: 2}
	require.NoError(t, messages.Create(ctx, otherMsg))

	_, err := messages.InsertRead(ctx, msg.ID, "u2", 3)
	require.NoError(t, err)
	_, err = messages.ToggleReaction(ctx, msg.ID, "u2", "ok", 3)
	require.NoError(t, err)
	msg.Content = "edited"
	require.NoError(t, messages.UpdateContent(ctx, msg, &models.MessageEdit{MessageID: msg.ID, EditedBy: "u1", OldContent: "m", EditedAt: 4}))
	chatID := chat.ID
	require.NoError(t, chats.CreateFileUpload(ctx, &models.FileUpload{FileName: "a.png", FileType: "image/png", FileURL: "https://x/a.png", UploadedBy: "u1", ChatID: &chatID}))

	require.NoError(t, chats.DeleteCascade(ctx, chat.ID))

	for _, model := range []interface{}{&models.MessageRead{}, &models.MessageReaction{}, &models.MessageEdit{}} {
		var n int64
		require.NoError(t, db.Model(model).Where("message_id = ?", msg.ID).Count(&n).Error)
		assert.Zero(t, n)
	}
	for _, model := range []interface{}{&models.Message{}, &models.ChatMember{}, &models.FileUpload{}} {
		var n int64
		require.NoError(t, db.Model(model).Where("chat_id = ?", chat.ID).Count(&n).Error)
		assert.Zero(t, n)
	}
	_, err = chats.FindByID(ctx, chat.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// the other chat is untouched
	_, err = messages.FindByID(ctx, otherMsg.ID)
	assert.NoError(t, err)
	_, err = chats.FindMember(ctx, other.ID, "u1")
	assert.NoError(t, err)

	assert.ErrorIs(t, chats.DeleteCascade(ctx, chat.ID), repositories.ErrNotFound)
}

func TestSetMuted(t *testing.T) {
	db := testutil.NewDB(t)
	chats := NewChatRepository(db)
	ctx := context.Background()

	chat := seedChat(t, db, "u1", 1)
	require.NoError(t, chats.SetMuted(ctx, chat.ID, "u1", true))

	member, err := chats.FindMember(ctx, chat.ID, "u1")
	require.NoError(t, err)
	assert.True(t, member.IsMuted)

	assert.ErrorIs(t, chats.SetMuted(ctx, chat.ID, "stranger", true), repositories.ErrNotFound)
}

func TestUserRepository(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	token := "tok"
	empty := ""
	a := &models.User{Name: "A", Email: "a@example.com", PushToken: &token}
	b := &models.User{Name: "B", Email: "b@example.com", PushToken: &token}
	c := &models.User{Name: "C", Email: "c@example.com", PushToken: &empty}
	for _, u := range []*models.User{a, b, c} {
		require.NoError(t, users.Create(ctx, u))
	}

	got, err := users.FindByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	withTokens, err := users.ListWithPushTokens(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, withTokens, 1)
	assert.Equal(t, b.ID, withTokens[0].ID)

	byIDs, err := users.FindByIDs(ctx, []string{a.ID, c.ID})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)

	require.NoError(t, users.Update(ctx, a.ID, map[string]interface{}{"name": "Alice"}))
	got, err = users.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	assert.ErrorIs(t, users.Update(ctx, "missing", map[string]interface{}{"name": "x"}), repositories.ErrNotFound)
}
