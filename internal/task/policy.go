package task

// abortOnFinish reports whether a running task should be cancelled when the
// orchestrator shuts down. Tasks that only feed the screen are pointless
// once the program exits; tasks that mutate the file system or the caches
// are allowed to finish.
func abortOnFinish(t Task) bool {
	switch t.(type) {
	case EmitMessages, EnumerateDirectory, LoadPreview:
		return true
	case AddPath, DeletePath, RenamePath, SaveHistory, OptimizeHistory,
		YankPath, TrashPath, RestorePath, DeleteRegisterEntry:
		return false
	default:
		return true
	}
}
