package entity

// Names of the commands exposed to editor hosts.
const (
	CommandRestartServer     = "zetaNote.restartServer"
	CommandShowOutputChannel = "zetaNote.showOutputChannel"
	CommandShowReferences    = "zetaNote.showReferences"
	CommandFollowLink        = "zetaNote.followLink"
)

// Commands lists every command accepted through workspace/executeCommand.
var Commands = []string{
	CommandRestartServer,
	CommandShowOutputChannel,
	CommandShowReferences,
	CommandFollowLink,
}

// Editor navigation primitives executed by the host.
const (
	EditorCommandShowReferences = "editor.action.showReferences"
	EditorCommandGoToLocations  = "editor.action.goToLocations"
)

// FollowLinkNotFoundMessage is shown by the host when the link target cannot be located.
const FollowLinkNotFoundMessage = "Couldn't locate the target of the link"

// JSON-RPC methods outside the standard protocol.
const (
	// MethodServerStatus is sent by the server whenever its indexing status changes.
	MethodServerStatus = "zeta-note/status"
	// MethodEditorCommand asks a host to run one of its own navigation commands.
	MethodEditorCommand = "zetaNote/editorCommand"
	// MethodStatusBar carries the rendered status indicator to hosts.
	MethodStatusBar = "zetaNote/statusBar"
	// MethodStatusQuery lets a host read the current Status.
	MethodStatusQuery = "zetaNote/status"
)
