package commands

import (
	"fmt"
	"strconv"

	"github.com/marmos91/fileengine/cmd/fectl/cmdutil"
	"github.com/marmos91/fileengine/internal/cli/output"
	"github.com/marmos91/fileengine/internal/cli/timeutil"
	"github.com/marmos91/fileengine/pkg/fileengine"
)

// EntryList is a directory listing rendered as a table.
type EntryList []fileengine.DirEntry

func (l EntryList) Headers() []string {
	return []string{"UID", "NAME", "TYPE", "SIZE", "VERSION", "DELETED"}
}

func (l EntryList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, e := range l {
		size := "-"
		if !e.IsContainer {
			size = timeutil.FormatBytes(e.Size)
		}
		rows = append(rows, []string{
			e.UID,
			e.Name,
			e.Type.String(),
			size,
			timeutil.FormatVersion(e.Version),
			cmdutil.BoolToYesNo(e.Deleted),
		})
	}
	return rows
}

// RevisionList is a version listing rendered as a table.
type RevisionList []fileengine.Revision

func (l RevisionList) Headers() []string {
	return []string{"#", "VERSION", "TIME", "USER"}
}

func (l RevisionList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for i, r := range l {
		rows = append(rows, []string{strconv.Itoa(i), r.Version, timeutil.FormatVersion(r.Version), r.User})
	}
	return rows
}

func fileInfoView(info *fileengine.FileInfo) output.KeyValues {
	return output.KeyValues{
		{"UID", info.UID},
		{"Name", info.Name},
		{"Type", info.Type.String()},
		{"Size", timeutil.FormatBytes(info.Size)},
		{"Owner", cmdutil.EmptyOr(info.Owner, "-")},
		{"Parent", cmdutil.EmptyOr(info.ParentUID, "-")},
		{"Permissions", fmt.Sprintf("%#o", info.Permissions)},
		{"Version", cmdutil.EmptyOr(info.Version, "-")},
		{"Created", timeutil.FormatTime(info.Created)},
		{"Modified", timeutil.FormatTime(info.Modified)},
	}
}

func usageView(u *fileengine.StorageUsage) output.KeyValues {
	return output.KeyValues{
		{"Total", timeutil.FormatBytes(u.TotalSpace)},
		{"Used", timeutil.FormatBytes(u.UsedSpace)},
		{"Available", timeutil.FormatBytes(u.AvailableSpace)},
		{"Usage", fmt.Sprintf("%.1f%%", u.UsagePercentage)},
	}
}

// uidResult is the structured output of commands that create an entity.
type uidResult struct {
	UID string `json:"uid" yaml:"uid"`
}

// printUID prints the uid of a created entity. Table mode prints it bare so
// that it can be captured by scripts.
func printUID(p *output.Printer, uid string) error {
	if p.Structured() {
		return p.Print(uidResult{UID: uid}, nil)
	}
	_, err := fmt.Fprintln(p.Out(), uid)
	return err
}
