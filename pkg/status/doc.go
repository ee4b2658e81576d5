/*
Package status manages target file access and per-file tracking for glo2lyx.

	            +-------------+
	            |   Status    |
	            |  (Manager)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           | Summary |
	| (Storage) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Reads and rewrites LyX files relative to a base directory
- Tracks the outcome of every processed file
- Produces the end of run summary

🔄 Write modes:
1. WriteFile truncates and rewrites in place. No backup is kept, and a
   failure partway through leaves earlier files rewritten.
2. WriteFileAtomic writes a sibling temp file and renames it over the target,
   so a reader never sees a half written file.
3. BackupFile copies the target to "<path>.bak" before either write.

🔍 Example:

	mgr := status.New(root, logger)
	content, err := mgr.ReadFile(ctx, "chapters/intro.lyx")
	if err != nil {
		return err
	}
	if err := mgr.WriteFileAtomic(ctx, "chapters/intro.lyx", updated); err != nil {
		return err
	}
	mgr.TrackFile(ctx, "chapters/intro.lyx", status.FileInfo{Status: status.StatusModified})
*/
package status
