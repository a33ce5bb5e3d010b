package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"polyglot/internal/domain/valueobject"
	"polyglot/pkg/tz"
)

// resolve prints the message for args[0], binding name=value pairs from the
// remaining arguments.
func (a *app) resolve(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("resolve: missing message key")
	}
	key, err := valueobject.NewMessageKey(args[0])
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}
	params := make(map[string]string, len(args)-1)
	for _, kv := range args[1:] {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return fmt.Errorf("resolve: parameter %q is not name=value", kv)
		}
		params[name] = value
	}

	msg, err := a.messages.GetMessageWithParams(ctx, key, params, a.locale)
	if err != nil {
		return err
	}
	if msg.Locale != a.locale {
		a.logger.Info("resolved by fallback", "requested", a.locale.String(), "locale", msg.Locale.String())
	}
	fmt.Fprintln(a.stdout, msg.Resolve())
	return nil
}

func (a *app) printMessages(ctx context.Context) error {
	locale, msgs, err := a.messages.GetAllMessages(ctx, a.locale)
	if err != nil {
		return err
	}
	keys := make([]valueobject.MessageKey, 0, len(msgs))
	for k := range msgs {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(x, y valueobject.MessageKey) int {
		return strings.Compare(x.String(), y.String())
	})

	fmt.Fprintf(a.stdout, "# %s\n", locale)
	for _, k := range keys {
		fmt.Fprintf(a.stdout, "%s = %s\n", k, msgs[k])
	}
	return nil
}

func (a *app) printBundles(ctx context.Context) error {
	loc, err := tz.Load(a.cfg.Timezone)
	if err != nil {
		return err
	}
	bundles, err := a.repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("list bundles: %w", err)
	}
	for _, b := range bundles {
		fmt.Fprintf(a.stdout, "%-10s %3d messages  updated %s\n", b.Locale, b.Len(), tz.Format(b.LastUpdated, loc))
	}
	return nil
}

func (a *app) detect(ctx context.Context, args []string) error {
	fmt.Fprintln(a.stdout, a.messages.DetectLocale(ctx, strings.Join(args, " ")))
	return nil
}

// validate reports whether every bundle is complete.
func (a *app) validate(ctx context.Context) (bool, error) {
	res, err := a.messages.ValidateBundles(ctx)
	if err != nil {
		return false, err
	}
	if res.Valid {
		fmt.Fprintln(a.stdout, "all bundles are complete")
		return true, nil
	}
	for _, e := range res.Errors {
		fmt.Fprintln(a.stdout, e)
	}
	return false, nil
}

func (a *app) missing(ctx context.Context) error {
	missing, err := a.messages.FindMissingTranslations(ctx)
	if err != nil {
		return err
	}
	locales := make([]valueobject.Locale, 0, len(missing))
	for l := range missing {
		locales = append(locales, l)
	}
	slices.SortFunc(locales, func(x, y valueobject.Locale) int {
		return strings.Compare(x.String(), y.String())
	})
	for _, l := range locales {
		keys := make([]string, len(missing[l]))
		for i, k := range missing[l] {
			keys[i] = k.String()
		}
		fmt.Fprintf(a.stdout, "%s: %s\n", l, strings.Join(keys, ", "))
	}
	return nil
}
