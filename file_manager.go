package srcfix

type FileManager struct{}

func NewFileManager() *FileManager {
	return &FileManager{}
}

// Undo restores each file of a recorded run to its pre-run content. A file
// whose current hash no longer matches the recorded post-run hash was edited
// since and is refused, not overwritten.
func (m *FileManager) Undo(ops []Operation, stateDir string) Summary {
	var s Summary
	for _, op := range ops {
		if !m.restore(op.Path, op.ContentHash, op.OldContentHash, stateDir) {
			s.Failed = append(s.Failed, op.Path)
			continue
		}
		s.Fixed = append(s.Fixed, op.Path)
	}
	return s
}

// Redo re-applies a previously undone run, with the mirrored hash check.
func (m *FileManager) Redo(ops []Operation, stateDir string) Summary {
	var s Summary
	for _, op := range ops {
		if !m.restore(op.Path, op.OldContentHash, op.ContentHash, stateDir) {
			s.Failed = append(s.Failed, op.Path)
			continue
		}
		s.Fixed = append(s.Fixed, op.Path)
	}
	return s
}

func (m *FileManager) restore(path, expectHash, wantHash, stateDir string) bool {
	actualHash, err := GetFileSHA256(path)
	if err != nil || actualHash != expectHash {
		return false
	}

	content, err := ReadBlob(stateDir, wantHash)
	if err != nil {
		return false
	}

	return WriteFileAtomic(path, content, 0644) == nil
}
