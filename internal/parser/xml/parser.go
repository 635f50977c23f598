// Package xml turns a DI file in the "ListaDeclaracoes" schema into a
// normalized declaration draft. Parsing is pure apart from currency
// lookups: manufacturer lookup-or-create is deferred to the caller via the
// candidate list on the draft.
package xml

import (
	"context"
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kmee/trade-import/internal/currency"
	"github.com/kmee/trade-import/internal/model"
	"github.com/kmee/trade-import/internal/money"
	"github.com/kmee/trade-import/internal/siscomex"
)

// ManufacturerCandidate is an unresolved manufacturer reference captured
// during parsing. The resolution step performs lookup-or-create against
// the partner directory and injects the resolved reference into the
// matching addition.
type ManufacturerCandidate struct {
	AdditionNumber string
	Name           string
	Street         string
	Number         string
	City           string
	State          string
}

// Draft is the outcome of parsing: the declaration value plus the
// reference requests the caller still has to resolve.
type Draft struct {
	Declaration   *model.Declaration
	Manufacturers []ManufacturerCandidate
}

// Parser walks a bound DI document tree and builds the declaration draft
type Parser struct {
	currencies currency.Resolver
}

// NewParser creates a parser resolving currencies through the given
// resolver.
func NewParser(currencies currency.Resolver) *Parser {
	return &Parser{currencies: currencies}
}

// Parse reads and parses one DI file
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*Draft, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewMalformedDocumentError("failed to read content", err)
	}
	return p.ParseBytes(ctx, content)
}

// ParseBytes parses one DI file from a byte slice
func (p *Parser) ParseBytes(_ context.Context, content []byte) (*Draft, error) {
	var lista listaDeclaracoes
	if err := xml.Unmarshal(content, &lista); err != nil {
		return nil, model.NewMalformedDocumentError("failed to decode XML", err)
	}
	if lista.Declaracao == nil {
		return nil, model.NewMalformedDocumentError("declaracaoImportacao element is missing", nil)
	}
	return p.convertDeclaration(lista.Declaracao, content)
}

func (p *Parser) convertDeclaration(di *declaracaoImportacao, rawXML []byte) (*Draft, error) {
	dec := &model.Declaration{
		DocumentNumber:    di.NumeroDI,
		ClearanceLocation: di.RecintoAduaneiroNome,
		ClearanceState:    di.URFEntradaNome,
		TransportMode:     model.TransportModeFromCode(di.ViaTransporteCodigo),
		Intermediation:    model.IntermediationFromCode(di.OperacaoCodigoTipo),
		Notes:             di.InformacaoComplementar,
		State:             model.StateDraft,
		RawXML:            rawXML,
	}

	if date, err := parseDate(di.DataRegistro); err == nil {
		dec.DocumentDate = date
	}
	if date, err := parseDate(di.DataDesembaraco); err == nil {
		dec.ClearanceDate = date
	}

	if dec.Intermediation.RequiresThirdParty() {
		dec.ThirdPartyPartner = strings.TrimSpace(di.NumeroAgente)
	}

	var err error
	if dec.FreightAmount, err = money.DecodeScaled(di.FreteTotalMoeda, money.ScaleCents); err != nil {
		return nil, model.NewMalformedDocumentError("freteTotalMoeda", err)
	}
	if dec.FreightAmountBRL, err = money.DecodeScaled(di.FreteTotalReais, money.ScaleCents); err != nil {
		return nil, model.NewMalformedDocumentError("freteTotalReais", err)
	}
	if dec.InsuranceAmount, err = money.DecodeScaled(di.SeguroTotalMoeda, money.ScaleCents); err != nil {
		return nil, model.NewMalformedDocumentError("seguroTotalMoedaNegociada", err)
	}
	if dec.InsuranceAmountBRL, err = money.DecodeScaled(di.SeguroTotalReais, money.ScaleCents); err != nil {
		return nil, model.NewMalformedDocumentError("seguroTotalReais", err)
	}

	// Unresolved currencies leave the field unset; partial data beats a
	// hard failure on an unmapped code.
	if c, ok := p.currencies.Resolve(di.FreteMoedaCodigo); ok {
		dec.FreightCurrency = c
	}
	if c, ok := p.currencies.Resolve(di.SeguroMoedaCodigo); ok {
		dec.InsuranceCurrency = c
	}

	// The other-costs aggregate and the AFRMM are carried only in the
	// complementary notes, never as structured fields.
	dec.AmountOtherCostsBRL = siscomex.SumTaxMentions(dec.Notes)
	dec.AFRMM = siscomex.SumLabeledAmounts(dec.Notes, siscomex.AFRMMLabel)

	var candidates []ManufacturerCandidate
	for _, add := range di.Adicoes {
		converted, err := p.convertAddition(&add)
		if err != nil {
			return nil, err
		}
		dec.Additions = append(dec.Additions, *converted)

		if name := strings.TrimSpace(add.FabricanteNome); name != "" {
			candidates = append(candidates, ManufacturerCandidate{
				AdditionNumber: converted.Number,
				Name:           name,
				Street:         add.FabricanteLogradouro,
				Number:         add.FabricanteNumero,
				City:           add.FabricanteCidade,
				State:          add.FabricanteEstado,
			})
		}
	}

	dec.RecalculateTotals()
	dec.Imported = true

	return &Draft{Declaration: dec, Manufacturers: candidates}, nil
}

func (p *Parser) convertAddition(add *adicao) (*model.Addition, error) {
	result := &model.Addition{
		Number:   add.NumeroAdicao,
		Drawback: add.NumeroDrawback,
	}

	var err error
	if result.AmountCurrency, err = money.DecodeScaled(add.CondicaoVendaValorMoeda, money.ScaleCents); err != nil {
		return nil, model.NewMalformedDocumentError("condicaoVendaValorMoeda", err)
	}
	if result.AmountBRL, err = money.DecodeScaled(add.CondicaoVendaValorReais, money.ScaleCents); err != nil {
		return nil, model.NewMalformedDocumentError("condicaoVendaValorReais", err)
	}
	result.CurrencyRate = money.ImpliedRate(result.AmountBRL, result.AmountCurrency)

	if c, ok := p.currencies.Resolve(add.CondicaoVendaMoedaCodigo); ok {
		result.TradeCurrency = c
	}

	// The source format for multi-entry adjustments is underspecified:
	// refuse collections instead of silently dropping entries.
	if len(add.Acrescimos) > 1 {
		return nil, model.NewUnsupportedMultiValueError(add.NumeroAdicao, "acrescimo", len(add.Acrescimos))
	}
	if len(add.Deducoes) > 1 {
		return nil, model.NewUnsupportedMultiValueError(add.NumeroAdicao, "deducao", len(add.Deducoes))
	}

	if len(add.Acrescimos) == 1 {
		v, err := p.convertValue(add.Acrescimos[0], false)
		if err != nil {
			return nil, err
		}
		result.Values = append(result.Values, *v)
	}
	if len(add.Deducoes) == 1 {
		v, err := p.convertValue(add.Deducoes[0], true)
		if err != nil {
			return nil, err
		}
		result.Values = append(result.Values, *v)
	}

	for _, merc := range add.Mercadorias {
		line, err := convertLine(merc)
		if err != nil {
			return nil, err
		}
		line.Recalculate(result.CurrencyRate)
		result.Lines = append(result.Lines, *line)
	}

	result.RecalculateTotals()
	return result, nil
}

// convertValue builds one adjustment entry. Deductions are stored negated
// so the adjustment sums carry their sign.
func (p *Parser) convertValue(adj ajuste, deduction bool) (*model.AdditionValue, error) {
	value := &model.AdditionValue{
		Code:         adj.codigo(),
		Denomination: adj.Denominacao,
	}

	var err error
	if value.AmountCurrency, err = money.DecodeScaled(adj.ValorMoeda, money.ScaleCents); err != nil {
		return nil, model.NewMalformedDocumentError("valorMoedaNegociada", err)
	}
	if value.AmountBRL, err = money.DecodeScaled(adj.ValorReais, money.ScaleCents); err != nil {
		return nil, model.NewMalformedDocumentError("valorReais", err)
	}
	if deduction {
		value.AmountCurrency = value.AmountCurrency.Neg()
		value.AmountBRL = value.AmountBRL.Neg()
	}
	value.CurrencyRate = money.ImpliedRate(value.AmountBRL, value.AmountCurrency)

	if c, ok := p.currencies.Resolve(adj.MoedaCodigo); ok {
		value.TradeCurrency = c
	}

	return value, nil
}

func convertLine(merc mercadoria) (*model.Line, error) {
	line := &model.Line{
		Description:   merc.DescricaoMercadoria,
		UnitOfMeasure: merc.UnidadeMedida,
	}

	if seq, err := strconv.Atoi(strings.TrimSpace(merc.NumeroSequencialItem)); err == nil {
		line.Sequence = seq
	}

	var err error
	if line.Quantity, err = money.DecodeScaled(merc.Quantidade, money.ScaleQuantity); err != nil {
		return nil, model.NewMalformedDocumentError("quantidade", err)
	}
	if line.PriceUnit, err = money.DecodeScaled(merc.ValorUnitario, money.ScaleUnitPrice); err != nil {
		return nil, model.NewMalformedDocumentError("valorUnitario", err)
	}

	return line, nil
}

// parseDate parses the 8-digit YYYYMMDD date format used by the DI
func parseDate(s string) (time.Time, error) {
	return time.Parse("20060102", strings.TrimSpace(s))
}
