package xml

import "encoding/xml"

// XML binding for the "ListaDeclaracoes" DI schema. Monetary fields are
// integer-scaled strings; decoding happens in the parser, not here.

type listaDeclaracoes struct {
	XMLName    xml.Name              `xml:"ListaDeclaracoes"`
	Declaracao *declaracaoImportacao `xml:"declaracaoImportacao"`
}

type declaracaoImportacao struct {
	NumeroDI     string `xml:"numeroDI"`
	DataRegistro string `xml:"dataRegistro"`

	RecintoAduaneiroNome string `xml:"armazenamentoRecintoAduaneiroNome"`
	URFEntradaNome       string `xml:"cargaUrfEntradaNome"`
	DataDesembaraco      string `xml:"dataDesembaraco"`

	ViaTransporteCodigo string `xml:"viaTransporteCodigo"`
	ViaTransporteNome   string `xml:"viaTransporteNome"`

	OperacaoCodigoTipo string `xml:"caracterizacaoOperacaoCodigoTipo"`
	NumeroAgente       string `xml:"cargaNumeroAgente"`

	FreteTotalMoeda     string `xml:"freteTotalMoeda"`
	FreteMoedaCodigo    string `xml:"freteMoedaNegociadaCodigo"`
	FreteTotalReais     string `xml:"freteTotalReais"`
	SeguroTotalMoeda    string `xml:"seguroTotalMoedaNegociada"`
	SeguroMoedaCodigo   string `xml:"seguroMoedaNegociadaCodigo"`
	SeguroTotalReais    string `xml:"seguroTotalReais"`

	InformacaoComplementar string `xml:"informacaoComplementar"`

	Adicoes []adicao `xml:"adicao"`
}

type adicao struct {
	NumeroAdicao string `xml:"numeroAdicao"`

	CondicaoVendaMoedaCodigo string `xml:"condicaoVendaMoedaCodigo"`
	CondicaoVendaValorMoeda  string `xml:"condicaoVendaValorMoeda"`
	CondicaoVendaValorReais  string `xml:"condicaoVendaValorReais"`

	FabricanteNome       string `xml:"fabricanteNome"`
	FabricanteLogradouro string `xml:"fabricanteLogradouro"`
	FabricanteNumero     string `xml:"fabricanteNumero"`
	FabricanteCidade     string `xml:"fabricanteCidade"`
	FabricanteEstado     string `xml:"fabricanteEstado"`

	NumeroDrawback string `xml:"numeroDrawback"`

	Acrescimos []ajuste `xml:"acrescimo"`
	Deducoes   []ajuste `xml:"deducao"`

	Mercadorias []mercadoria `xml:"mercadoria"`
}

// ajuste covers both acrescimo and deducao entries, which share a shape
type ajuste struct {
	CodigoAcrescimo string `xml:"codigoAcrescimo"`
	CodigoDeducao   string `xml:"codigoDeducao"`
	Denominacao     string `xml:"denominacao"`
	MoedaCodigo     string `xml:"moedaNegociadaCodigo"`
	ValorMoeda      string `xml:"valorMoedaNegociada"`
	ValorReais      string `xml:"valorReais"`
}

func (a ajuste) codigo() string {
	if a.CodigoAcrescimo != "" {
		return a.CodigoAcrescimo
	}
	return a.CodigoDeducao
}

type mercadoria struct {
	NumeroSequencialItem string `xml:"numeroSequencialItem"`
	DescricaoMercadoria  string `xml:"descricaoMercadoria"`
	Quantidade           string `xml:"quantidade"`
	UnidadeMedida        string `xml:"unidadeMedida"`
	ValorUnitario        string `xml:"valorUnitario"`
}
