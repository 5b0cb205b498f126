package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/iurnickita/shortlink/internal/shortlink/config"
	"github.com/iurnickita/shortlink/internal/shortlink/validation"
)

var errNotSignedIn = errors.New("not signed in")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shortlink",
		Short:         "Shorten URLs anonymously or with a ShortLink account",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newSignInCmd(),
		newSignUpCmd(),
		newShortenCmd(),
		newLinksCmd(),
		newLogoutCmd(),
		newStatusCmd(),
	)
	return root
}

// printFormErrors выводит ошибки полей формы, если err - ошибка валидации
func printFormErrors(w io.Writer, err error) {
	var vErr *validation.Error
	if !errors.As(err, &vErr) {
		return
	}
	for _, field := range vErr.Fields.Fields() {
		fmt.Fprintf(w, "  %s: %s\n", field, vErr.Fields[field])
	}
}

func newSignInCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in to an existing account",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			if err := a.ctl.RequestSignIn(); err != nil {
				return err
			}
			err := a.ctl.SubmitSignIn(ctx, email, password)
			printFormErrors(cmd.OutOrStdout(), err)
			return err
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newSignUpCmd() *cobra.Command {
	var form validation.SignUpForm

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			if err := a.ctl.RequestSignUp(); err != nil {
				return err
			}
			if form.Password != "" {
				_, label := a.ctl.PasswordStrength(form.Password)
				fmt.Fprintf(cmd.OutOrStdout(), "Password strength: %s\n", label)
			}
			err := a.ctl.SubmitSignUp(ctx, form)
			printFormErrors(cmd.OutOrStdout(), err)
			return err
		}),
	}
	cmd.Flags().StringVar(&form.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "account password")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm", "", "password confirmation")
	cmd.Flags().BoolVar(&form.AcceptTerms, "accept-terms", false, "accept the terms of service")
	return cmd
}

func newShortenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shorten <url>",
		Short: "Create a short link",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			link, err := a.ctl.Shorten(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, a.ctl.ShortURL(link))
			if link.AdminKey != "" {
				fmt.Fprintf(out, "admin key: %s\n", link.AdminKey)
			}
			return nil
		}),
	}
}

func newLinksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "links",
		Short: "List links created by the signed in user",
		Args:  cobra.NoArgs,
		RunE: withApp(func(_ context.Context, a *app, cmd *cobra.Command, _ []string) error {
			if a.ctl.IsGuest() {
				return errNotSignedIn
			}
			out := cmd.OutOrStdout()
			links := a.ctl.Links()
			if len(links) == 0 {
				fmt.Fprintln(out, "no links yet")
				return nil
			}
			for _, link := range links {
				fmt.Fprintf(out, "%s -> %s\n", a.ctl.ShortURL(link), link.TargetURL)
			}
			return nil
		}),
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			if a.ctl.IsGuest() {
				return errNotSignedIn
			}
			if err := a.ctl.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		}),
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: withApp(func(_ context.Context, a *app, cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, a.ctl.Greeting())
			if sess, ok := a.ctl.Session(); ok {
				fmt.Fprintf(out, "signed in as %s <%s>\n", sess.Username(), sess.Email())
			}
			return nil
		}),
	}
}
