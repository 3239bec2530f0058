package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weatherapp/config"
	"weatherapp/internal/api"
	"weatherapp/internal/geocode"
	"weatherapp/internal/storage"
	"weatherapp/internal/weather"

	"github.com/spf13/cobra"
)

var (
	configFile string
	unitFlag   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "weatherapp",
		Short: "Weather request backend",
		Long:  "A backend that resolves locations, fetches open-meteo weather, and stores weather requests",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(weatherCmd())
	rootCmd.AddCommand(geocodeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := storage.NewDatabase(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()
			log.Printf("Database opened at %s", cfg.Database.Path)

			if cfg.Geocoding.APIKey == "" {
				log.Println("Warning: no geocoding API key configured, free-text lookups will fail")
			}

			server := api.NewServer(api.ServerConfig{
				Port:     cfg.Server.Port,
				Database: db,
				Geocoder: geocode.NewClient(cfg.Geocoding.BaseURL, cfg.Geocoding.APIKey, cfg.Geocoding.Timeout),
				Weather:  weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.Timeout),
			})

			go func() {
				if err := server.Start(); err != nil {
					log.Printf("API server error: %v", err)
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			log.Println("Weatherapp started. Press Ctrl+C to stop.")
			<-sigChan
			log.Println("Shutting down...")

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Stop(ctx)
		},
	}
}

func weatherCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weather <query>",
		Short: "Fetch weather once for a place or \"lat,lon\" pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			location, err := resolveQuery(cfg, args[0])
			if err != nil {
				return err
			}

			client := weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.Timeout)
			unit := unitFlag
			if unit == "" {
				unit = cfg.Weather.DefaultUnit
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Weather.Timeout)
			defer cancel()
			forecast, err := client.CurrentAndForecast(ctx, location.Lat, location.Lon, unit)
			if err != nil {
				return fmt.Errorf("failed to fetch weather: %w", err)
			}

			fmt.Printf("Weather for %s (%.4f, %.4f)\n", location.Label, location.Lat, location.Lon)
			output, _ := json.MarshalIndent(forecast, "", "  ")
			fmt.Println(string(output))
			return nil
		},
	}
	cmd.Flags().StringVarP(&unitFlag, "unit", "u", "", "temperature unit (fahrenheit or celsius)")
	return cmd
}

func geocodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "geocode <query>",
		Short: "Resolve a place name or \"lat,lon\" pair to coordinates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			location, err := resolveQuery(cfg, args[0])
			if err != nil {
				return err
			}

			output, _ := json.MarshalIndent(location, "", "  ")
			fmt.Println(string(output))
			return nil
		},
	}
}

func resolveQuery(cfg *config.Config, query string) (*geocode.Location, error) {
	client := geocode.NewClient(cfg.Geocoding.BaseURL, cfg.Geocoding.APIKey, cfg.Geocoding.Timeout)
	resolver := geocode.NewResolver(client)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Geocoding.Timeout)
	defer cancel()

	location, err := resolver.Resolve(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", query, err)
	}
	return location, nil
}
