package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"backplane/host/emulator"
	"backplane/host/serial"
	"backplane/host/socketcan"
)

var cfg emulator.Config

func main() {
	var err error
	cfg, err = emulator.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	root := &cobra.Command{
		Use:   "backplane-host",
		Short: "Host-side tools for the vehicle backplane",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// glog reads its settings from the Go flag set
			_ = flag.CommandLine.Parse(nil)
		},
	}
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	root.PersistentFlags().StringVar(&cfg.SerialDevice, "device", cfg.SerialDevice, "Serial device path")
	root.PersistentFlags().IntVar(&cfg.Baud, "baud", cfg.Baud, "Baud rate")

	root.AddCommand(newEmulateCmd(), newMonitorCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
	glog.Flush()
}

func newEmulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emulate",
		Short: "Run the backplane core against SocketCAN and a serial port",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmulator()
		},
	}
	cmd.Flags().StringVar(&cfg.CANInterface, "can", cfg.CANInterface, "SocketCAN interface")
	cmd.Flags().Var(&cfg.Target, "target", "Bus address host bytes are sent to")
	cmd.Flags().Var(&cfg.Receive, "receive", "Own bus address to accept (0 accepts all)")
	cmd.Flags().IntVar(&cfg.ConversionMS, "conversion-ms", cfg.ConversionMS, "Simulated ADC conversion time")
	cmd.Flags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "Log core debug output")
	return cmd
}

func newMonitorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Dump bytes from a backplane and forward stdin to it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor()
		},
	}
}

func runEmulator() error {
	coreCfg, err := cfg.CoreConfig()
	if err != nil {
		return err
	}

	port, err := serial.Open(serial.DefaultConfigWithBaud(cfg.SerialDevice, cfg.Baud))
	if err != nil {
		return err
	}
	link := serial.NewLink(port, serial.DefaultRxBufferSize)
	defer link.Close()

	var bus emulator.Bus
	can, busErr := socketcan.Open(cfg.CANInterface, coreCfg.ReceiveAddress)
	if busErr != nil {
		bus = emulator.OfflineBus(busErr)
	} else {
		bus = can
		defer can.Close()
	}

	emu, err := emulator.New(cfg, link, bus, busErr, nil)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		close(done)
	}()

	emu.Run(done)
	return nil
}

func runMonitor() error {
	port, err := serial.Open(serial.DefaultConfigWithBaud(cfg.SerialDevice, cfg.Baud))
	if err != nil {
		return err
	}
	defer port.Close()

	fmt.Printf("Monitoring %s at %d baud (stdin is forwarded, one bus frame per byte)\n", cfg.SerialDevice, cfg.Baud)

	go func() {
		if _, err := io.Copy(port, os.Stdin); err != nil {
			glog.Warningf("stdin: %v", err)
		}
	}()

	// Records carry no delimiters, so bytes are shown as they arrive
	dumper := hex.Dumper(os.Stdout)
	defer dumper.Close()

	buf := make([]byte, 64)
	for {
		n, err := port.Read(buf)
		if n > 0 {
			if _, werr := dumper.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("serial read: %w", err)
		}
	}
}
