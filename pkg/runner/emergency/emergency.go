package emergency

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"tableflip.dev/opsdeck/pkg/app"
	"tableflip.dev/opsdeck/pkg/printers"
)

// Raise records a new emergency. Without --yes it asks for confirmation
// first; an unconfirmed raise changes nothing.
type Raise struct {
	Kind  string
	Value string
	Yes   bool
	In    io.Reader

	Service *app.Service
}

func (n *Raise) Do(ctx context.Context) error {
	if !n.Yes {
		ok, err := confirm(n.In, fmt.Sprintf("raise %q emergency?", n.Kind))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("cancelled")
			return nil
		}
	}

	if err := n.Service.RaiseEmergency(ctx, n.Kind, n.Value); err != nil {
		return err
	}
	return print(ctx, n.Service)
}

// Resolve clears the current emergency, also behind a confirmation.
type Resolve struct {
	Yes bool
	In  io.Reader

	Service *app.Service
}

func (n *Resolve) Do(ctx context.Context) error {
	current, ok, err := n.Service.CurrentEmergency(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("no active emergency")
		return nil
	}

	if !n.Yes {
		ok, err := confirm(n.In, fmt.Sprintf("resolve %q emergency?", current.Kind))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("cancelled")
			return nil
		}
	}

	if err := n.Service.ResolveEmergency(ctx); err != nil {
		return err
	}
	fmt.Println("resolved")
	return nil
}

func confirm(in io.Reader, prompt string) (bool, error) {
	if in == nil {
		in = os.Stdin
	}
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func print(ctx context.Context, service *app.Service) error {
	current, ok, err := service.CurrentEmergency(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.Emergency(current, ok)
	return nil
}
