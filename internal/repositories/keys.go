package repositories

// Key layout of the flat namespace.
const (
	userPrefix              = "user:"
	postPrefix              = "post:"
	conversationPrefix      = "conversation:"
	userConversationsPrefix = "user_conversations:"
	userPostsPrefix         = "user_posts:"
	notificationPrefix      = "notification:"
)

func UserKey(id string) string              { return userPrefix + id }
func PostKey(id string) string              { return postPrefix + id }
func ConversationKey(id string) string      { return conversationPrefix + id }
func UserConversationsKey(id string) string { return userConversationsPrefix + id }
func UserPostsKey(id string) string         { return userPostsPrefix + id }

func NotificationKey(recipientID, id string) string {
	return notificationPrefix + recipientID + ":" + id
}

func notificationRecipientPrefix(recipientID string) string {
	return notificationPrefix + recipientID + ":"
}
