package protocol

// Method names
const (
	// Lifecycle
	MethodInitialize  = "initialize"
	MethodInitialized = "notifications/initialized"
	MethodPing        = "ping"
	MethodCancelled   = "notifications/cancelled"

	// Tools
	MethodListTools        = "tools/list"
	MethodCallTool         = "tools/call"
	MethodToolsListChanged = "notifications/tools/list_changed"

	// Resources
	MethodListResources         = "resources/list"
	MethodListResourceTemplates = "resources/templates/list"
	MethodReadResource          = "resources/read"
	MethodSubscribeResource     = "resources/subscribe"
	MethodUnsubscribeResource   = "resources/unsubscribe"
	MethodResourceUpdated       = "notifications/resources/updated"
	MethodResourcesListChanged  = "notifications/resources/list_changed"

	// Prompts
	MethodListPrompts        = "prompts/list"
	MethodGetPrompt          = "prompts/get"
	MethodPromptsListChanged = "notifications/prompts/list_changed"

	// Client features
	MethodCreateMessage    = "sampling/createMessage"
	MethodListRoots        = "roots/list"
	MethodRootsListChanged = "notifications/roots/list_changed"

	// Logging
	MethodSetLevel   = "logging/setLevel"
	MethodLogMessage = "notifications/message"
)

// IsNotificationMethod reports whether method names a notification
func IsNotificationMethod(method string) bool {
	const prefix = "notifications/"
	return len(method) > len(prefix) && method[:len(prefix)] == prefix
}
