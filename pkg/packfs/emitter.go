package packfs

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/smholvoet/Dump1090/pkg/types"
)

// toolID names the generator in the output header.
const toolID = "gen-packed-fs (github.com/smholvoet/Dump1090)"

// headerTmpl opens the generated file: generation stamp, the includes the
// fixed functions need, and forward declarations of the lookup API.
var headerTmpl = template.Must(template.New("header").Parse(`//
// Generated at {{.Timestamp}} by
// {{.Tool}}.
// DO NOT EDIT!
//
#include <time.h>
#include <ctype.h>
#include <string.h>

unsigned    mg_usage_count (size_t i);
const char *mg_unlist (size_t i);
const char *mg_unpack (const char *name, size_t *size, time_t *mtime);

`))

// tablePrologue opens the packed_files[] lookup table. Every row references
// an array emitted earlier in the file; the arrays must already exist.
const tablePrologue = `
static struct packed_file {
  const unsigned char *data;
  size_t               size;
  unsigned             count;
  time_t               mtime;
  const char          *name;
} packed_files[] = {
//  data, fsize, count, modified
`

// tableEpilogue terminates the table with a sentinel row and defines the
// three lookup functions. mg_unpack() reports the content size excluding
// the array's trailing NUL and bumps the usage counter on a hit.
const tableEpilogue = `  { NULL, 0, 0, 0, NULL }
};

const char *mg_unlist (size_t i)
{
  return (packed_files[i].name);
}

unsigned mg_usage_count (size_t i)
{
  return (packed_files[i].count);
}

const char *mg_unpack (const char *name, size_t *size, time_t *mtime)
{
  struct packed_file *p;

  for (p = packed_files; p->name; p++)
  {
    if (strcmp(p->name, name))
       continue;
    if (size)
       *size = p->size - 1;
    if (mtime)
    {
      *mtime = p->mtime;
      p->count++;
    }
    return (const char*) p->data;
  }
  return (NULL);
}
`

func writeHeader(w io.Writer, ts time.Time) error {
	return headerTmpl.Execute(w, struct {
		Timestamp string
		Tool      string
	}{
		Timestamp: ts.Format(time.ANSIC),
		Tool:      toolID,
	})
}

// writeTable emits one row per entry, in the same order the arrays were
// written, so row N references fileN.
func writeTable(w io.Writer, entries []*types.Entry) error {
	if _, err := fmt.Fprint(w, tablePrologue); err != nil {
		return err
	}
	for i, e := range entries {
		comment := fmt.Sprintf(" // %6d, %s", e.Stored, e.MTime.Format("2006-01-02 15:04:05"))
		if _, err := fmt.Fprintf(w, "  { file%d, sizeof(file%d), 0, %d,  %s\n    %q\n  },\n",
			i, i, e.MTime.Unix(), comment, e.Name); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, tableEpilogue)
	return err
}

// fmtNumber renders a byte count with dot-separated thousands groups for
// the progress and summary lines.
func fmtNumber(n int64) string {
	switch {
	case n > 1000000:
		return fmt.Sprintf("%d.%03d.%03d", n/1000000, (n/1000)%1000, n%1000)
	case n > 1000:
		return fmt.Sprintf("%d.%03d", n/1000, n%1000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
