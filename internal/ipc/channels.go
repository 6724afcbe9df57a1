package ipc

// Channel names shared by the host and renderer windows.
const (
	// ChannelDownload carries an image URL; fire-and-forget.
	ChannelDownload = "image:download"

	// ChannelSaveSettings carries a partial config.Settings; fire-and-forget.
	ChannelSaveSettings = "settings:save"

	// ChannelGetSettings is the only synchronous channel; it answers with the
	// live settings.
	ChannelGetSettings = "settings:get"

	// ChannelSettingsUpdated is broadcast to every window with the merged
	// settings after each save.
	ChannelSettingsUpdated = "settings:updated"
)
