package formats

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/racelap/timing-ingest-go/pkg/parser"
	_ "github.com/racelap/timing-ingest-go/pkg/parser/formats"
)

func NewFormatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "lists the registered timing formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listFormats()
		},
	}
	return cmd
}

func listFormats() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSERIES\tSTATUS\tFILE SLOTS")
	for _, info := range parser.ListFormats() {
		status := "available"
		if !info.Implemented {
			status = "planned"
		}
		slots := make([]string, 0, len(info.FileSlots))
		for _, slot := range info.FileSlots {
			if slot.Required {
				slots = append(slots, slot.Key+"*")
			} else {
				slots = append(slots, slot.Key)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			info.ID, info.Name, info.Series, status, strings.Join(slots, ","))
	}
	return w.Flush()
}
